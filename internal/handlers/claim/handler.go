package claim

import (
	"net/http"

	"rackcity/infras/otel"
	"rackcity/internal/domains/claim/model/dto"
	"rackcity/internal/domains/claim/service"
	"rackcity/shared/constant"
	gDto "rackcity/shared/dto"
	gModel "rackcity/shared/model"
	"rackcity/shared/validator"
	"rackcity/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Claim
	otel    otel.Otel
}

func New(service service.Claim, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/claims", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateClaim)
		routerGroup.Get("/mine", handler.GetMyClaims)
		routerGroup.Get("/", handler.GetClaims)
		routerGroup.Post("/{id}/approve", handler.ApproveClaim)
		routerGroup.Post("/{id}/reject", handler.RejectClaim)
	})
}

// CreateClaim submits a venue ownership claim.
// @Summary Claim a venue
// @Description Submit an ownership claim for an unclaimed venue with base64-encoded proof of ownership.
// @Tags Claim
// @Accept json
// @Produce json
// @Param request body dto.CreateClaimRequest true "Create Claim Request"
// @Success 201 {object} dto.ClaimResponse "Claim submitted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/claims [post]
// @Security BearerAuth
func (handler *Handler) CreateClaim(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateClaim")
	defer scope.End()

	req := dto.CreateClaimRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	claim, err := handler.service.Create(ctx, gModel.ActorFromContext(ctx), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create claim")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Claim created successfully")

	response.WithJSON(w, http.StatusCreated, claim)
}

// GetMyClaims lists the caller's claims.
// @Summary Get my claims
// @Description List the authenticated user's ownership claims.
// @Tags Claim
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} dto.GetClaimsResponse "Claims"
// @Failure 401 {object} response.Error
// @Router /v1/claims/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyClaims(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyClaims")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	claims, err := handler.service.ListMine(ctx, gModel.ActorFromContext(ctx), queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get claims")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Claims retrieved successfully")

	response.WithJSON(w, http.StatusOK, claims)
}

// GetClaims lists claims for review.
// @Summary Get all claims
// @Description List ownership claims with optional status filtering. Admin only.
// @Tags Claim
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Success 200 {object} dto.GetClaimsResponse "Claims"
// @Failure 403 {object} response.Error
// @Router /v1/claims [get]
// @Security BearerAuth
func (handler *Handler) GetClaims(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetClaims")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	status := r.URL.Query().Get(constant.RequestParamStatus)

	claims, err := handler.service.ListAll(ctx, gModel.ActorFromContext(ctx), queryParams, status)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get claims")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Claims retrieved successfully")

	response.WithJSON(w, http.StatusOK, claims)
}

// ApproveClaim approves a claim and transfers venue ownership.
// @Summary Approve a claim
// @Description Approve a pending claim, marking the venue claimed and assigning the claimant as owner. Admin only.
// @Tags Claim
// @Accept json
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} response.Message "Claim approved successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/claims/{id}/approve [post]
// @Security BearerAuth
func (handler *Handler) ApproveClaim(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApproveClaim")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Approve(ctx, gModel.ActorFromContext(ctx), id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to approve claim")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Claim approved successfully")

	response.WithMessage(w, http.StatusOK, "Claim approved successfully")
}

// RejectClaim rejects a claim.
// @Summary Reject a claim
// @Description Reject a pending ownership claim. Admin only.
// @Tags Claim
// @Accept json
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} response.Message "Claim rejected successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/claims/{id}/reject [post]
// @Security BearerAuth
func (handler *Handler) RejectClaim(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RejectClaim")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Reject(ctx, gModel.ActorFromContext(ctx), id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reject claim")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Claim rejected successfully")

	response.WithMessage(w, http.StatusOK, "Claim rejected successfully")
}
