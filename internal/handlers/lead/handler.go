package lead

import (
	"net/http"

	"rackcity/infras/otel"
	"rackcity/internal/domains/lead/model/dto"
	"rackcity/internal/domains/lead/service"
	"rackcity/shared/constant"
	gDto "rackcity/shared/dto"
	gModel "rackcity/shared/model"
	"rackcity/shared/validator"
	"rackcity/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Lead
	otel    otel.Otel
}

func New(service service.Lead, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/leads", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateLead)
		routerGroup.Get("/", handler.GetLeads)
		routerGroup.Patch("/{id}/status", handler.UpdateLeadStatus)
	})
}

// CreateLead records a sales inquiry. Public endpoint.
// @Summary Submit a lead
// @Description Record a sales inquiry from the site, optionally referencing a venue.
// @Tags Lead
// @Accept json
// @Produce json
// @Param request body dto.CreateLeadRequest true "Create Lead Request"
// @Success 201 {object} dto.LeadResponse "Lead created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/leads [post]
func (handler *Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateLead")
	defer scope.End()

	req := dto.CreateLeadRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	lead, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create lead")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Lead created successfully")

	response.WithJSON(w, http.StatusCreated, lead)
}

// GetLeads lists leads for follow-up.
// @Summary Get all leads
// @Description List sales leads with optional status filtering. Admin only.
// @Tags Lead
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (new, contacted, closed)"
// @Success 200 {object} dto.GetLeadsResponse "Leads"
// @Failure 403 {object} response.Error
// @Router /v1/leads [get]
// @Security BearerAuth
func (handler *Handler) GetLeads(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLeads")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	status := r.URL.Query().Get(constant.RequestParamStatus)

	leads, err := handler.service.ListAll(ctx, gModel.ActorFromContext(ctx), queryParams, status)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get leads")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Leads retrieved successfully")

	response.WithJSON(w, http.StatusOK, leads)
}

// UpdateLeadStatus moves a lead through the follow-up pipeline.
// @Summary Update lead status
// @Description Mark a lead as new, contacted, or closed. Admin only.
// @Tags Lead
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param request body dto.UpdateLeadStatusRequest true "Update Lead Status Request"
// @Success 200 {object} response.Message "Lead status updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/leads/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateLeadStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateLeadStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateLeadStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, gModel.ActorFromContext(ctx), id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update lead status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Lead status updated successfully")

	response.WithMessage(w, http.StatusOK, "Lead status updated successfully")
}
