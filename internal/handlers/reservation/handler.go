package reservation

import (
	"net/http"

	"rackcity/infras/otel"
	"rackcity/internal/domains/reservation/model/dto"
	"rackcity/internal/domains/reservation/service"
	"rackcity/shared/constant"
	gDto "rackcity/shared/dto"
	gModel "rackcity/shared/model"
	"rackcity/shared/validator"
	"rackcity/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReservation)
		routerGroup.Get("/", handler.GetMyReservations)
		routerGroup.Get("/{id}", handler.GetReservationByID)
		routerGroup.Patch("/{id}/status", handler.UpdateReservationStatus)
		routerGroup.Delete("/{id}", handler.CancelReservation)
	})
}

// CreateReservation books a table.
// @Summary Create a reservation
// @Description Book a table at a venue for a date, start time, and duration. Fails with a conflict when the slot is full.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Create Reservation Request"
// @Success 201 {object} dto.ReservationResponse "Reservation created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/reservations [post]
// @Security BearerAuth
func (handler *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	req := dto.CreateReservationRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Create(ctx, gModel.ActorFromContext(ctx), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation created successfully")

	response.WithJSON(w, http.StatusCreated, reservation)
}

// GetMyReservations lists the caller's reservations.
// @Summary Get my reservations
// @Description List the authenticated guest's reservations, newest first, with optional status filtering.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (pending, confirmed, completed, cancelled, no_show)"
// @Success 200 {object} dto.GetReservationsResponse "Reservations"
// @Failure 401 {object} response.Error
// @Router /v1/reservations [get]
// @Security BearerAuth
func (handler *Handler) GetMyReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyReservations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	status := r.URL.Query().Get(constant.RequestParamStatus)

	reservations, err := handler.service.ListMine(ctx, gModel.ActorFromContext(ctx), queryParams, status)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservations retrieved successfully")

	response.WithJSON(w, http.StatusOK, reservations)
}

// GetReservationByID retrieves a reservation.
// @Summary Get a reservation by ID
// @Description Retrieve a reservation. Visible to the guest who booked, the venue owner, and admins.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} dto.ReservationResponse "Reservation details"
// @Failure 404 {object} response.Error
// @Router /v1/reservations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	reservation, err := handler.service.Get(ctx, gModel.ActorFromContext(ctx), id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservation by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation retrieved successfully")

	response.WithJSON(w, http.StatusOK, reservation)
}

// UpdateReservationStatus moves a reservation through its lifecycle.
// @Summary Update reservation status
// @Description Confirm, complete, cancel, or mark a reservation as a no-show. Venue owner or admin only.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body dto.UpdateStatusRequest true "Update Status Request"
// @Success 200 {object} response.Message "Reservation status updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/reservations/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateReservationStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReservationStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, gModel.ActorFromContext(ctx), id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update reservation status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation status updated successfully")

	response.WithMessage(w, http.StatusOK, "Reservation status updated successfully")
}

// CancelReservation cancels the caller's reservation.
// @Summary Cancel a reservation
// @Description Cancel a pending or confirmed reservation. Guests may only cancel their own bookings.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Message "Reservation cancelled successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/reservations/{id} [delete]
// @Security BearerAuth
func (handler *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Cancel(ctx, gModel.ActorFromContext(ctx), id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation cancelled successfully")

	response.WithMessage(w, http.StatusOK, "Reservation cancelled successfully")
}
