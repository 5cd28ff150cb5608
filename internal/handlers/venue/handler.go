package venue

import (
	"net/http"
	"strconv"

	"rackcity/infras/otel"
	hoursDto "rackcity/internal/domains/hours/model/dto"
	hoursService "rackcity/internal/domains/hours/service"
	tableDto "rackcity/internal/domains/pooltable/model/dto"
	tableService "rackcity/internal/domains/pooltable/service"
	resService "rackcity/internal/domains/reservation/service"
	reviewDto "rackcity/internal/domains/review/model/dto"
	reviewService "rackcity/internal/domains/review/service"
	"rackcity/internal/domains/venue/model/dto"
	"rackcity/internal/domains/venue/service"
	"rackcity/shared/constant"
	gDto "rackcity/shared/dto"
	gModel "rackcity/shared/model"
	"rackcity/shared/validator"
	"rackcity/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

// Handler serves the venue resource and its nested resources: tables, hours,
// availability, reviews, and the owner's reservation dashboard.
type Handler struct {
	service       service.Venue
	tableService  tableService.PoolTable
	hoursService  hoursService.Hours
	resService    resService.Reservation
	reviewService reviewService.Review
	otel          otel.Otel
}

func New(
	service service.Venue,
	tableService tableService.PoolTable,
	hoursService hoursService.Hours,
	resService resService.Reservation,
	reviewService reviewService.Review,
	otel otel.Otel,
) Handler {
	return Handler{
		service:       service,
		tableService:  tableService,
		hoursService:  hoursService,
		resService:    resService,
		reviewService: reviewService,
		otel:          otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/venues", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.SearchVenues)
		routerGroup.Get("/nearby", handler.NearbyVenues)
		routerGroup.Post("/", handler.CreateVenue)
		routerGroup.Get("/slug/{slug}", handler.GetVenueBySlug)

		routerGroup.Route("/{id}", func(venueGroup chi.Router) {
			venueGroup.Get("/", handler.GetVenueByID)
			venueGroup.Patch("/", handler.UpdateVenue)
			venueGroup.Delete("/", handler.DeactivateVenue)
			venueGroup.Get("/tables", handler.GetVenueTables)
			venueGroup.Post("/tables", handler.CreatePoolTable)
			venueGroup.Get("/hours", handler.GetVenueHours)
			venueGroup.Put("/hours", handler.UpsertVenueHours)
			venueGroup.Get("/availability", handler.GetAvailability)
			venueGroup.Get("/reviews", handler.GetVenueReviews)
			venueGroup.Post("/reviews", handler.CreateReview)
			venueGroup.Get("/reservations", handler.GetVenueReservations)
		})
	})
}

// SearchVenues searches the venue directory.
// @Summary Search venues
// @Description Search active venues by free text, state, table types, and amenities, with pagination.
// @Tags Venue
// @Accept json
// @Produce json
// @Param q query string false "Free text matched against name and city"
// @Param state query string false "Two-letter state, or 'all'"
// @Param table_types query string false "Comma-separated table types; matches venues offering any of them"
// @Param amenities query string false "Comma-separated amenities; matches venues offering any of them"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 50)"
// @Success 200 {object} dto.GetVenuesResponse "Matching venues"
// @Failure 500 {object} response.Error
// @Router /v1/venues [get]
func (handler *Handler) SearchVenues(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchVenues")
	defer scope.End()

	req := dto.SearchVenuesRequest{}
	req.FromRequest(r)

	venues, err := handler.service.Search(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search venues")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Venues retrieved successfully")

	response.WithJSON(w, http.StatusOK, venues)
}

// NearbyVenues lists venues around a point.
// @Summary Find nearby venues
// @Description List active, geocoded venues within a radius of the given point, nearest first. Degrades to an empty list on failure.
// @Tags Venue
// @Accept json
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param radius query number false "Radius in miles (default 25)"
// @Param limit query int false "Maximum results (default 20)"
// @Success 200 {object} dto.NearbyVenuesResponse "Nearby venues"
// @Failure 400 {object} response.Error
// @Router /v1/venues/nearby [get]
func (handler *Handler) NearbyVenues(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".NearbyVenues")
	defer scope.End()

	req, err := nearbyFromRequest(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse nearby request")

		response.WithError(w, err)

		return
	}

	venues := handler.service.Nearby(ctx, req)

	scope.AddEvent("Nearby venues retrieved successfully")

	response.WithJSON(w, http.StatusOK, venues)
}

func nearbyFromRequest(r *http.Request) (dto.NearbyVenuesRequest, error) {
	query := r.URL.Query()

	req := dto.NearbyVenuesRequest{}

	lat, err := strconv.ParseFloat(query.Get(constant.RequestParamLat), 64)
	if err != nil {
		return req, validator.ValidateVar(query.Get(constant.RequestParamLat), "required,latitude") // nolint:wrapcheck
	}

	lon, err := strconv.ParseFloat(query.Get(constant.RequestParamLon), 64)
	if err != nil {
		return req, validator.ValidateVar(query.Get(constant.RequestParamLon), "required,longitude") // nolint:wrapcheck
	}

	req.Latitude = lat
	req.Longitude = lon

	if radius := query.Get(constant.RequestParamRadius); radius != "" {
		req.Radius, _ = strconv.ParseFloat(radius, 64)
	}

	if limit := query.Get(constant.RequestParamLimit); limit != "" {
		req.Limit, _ = strconv.Atoi(limit)
	}

	if err := validator.ValidateStruct(&req); err != nil {
		return req, err // nolint:wrapcheck
	}

	return req, nil
}

// GetVenueByID retrieves a venue by its ID.
// @Summary Get a venue by ID
// @Description Retrieve an active venue by its unique identifier.
// @Tags Venue
// @Accept json
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} dto.VenueResponse "Venue details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/{id} [get]
func (handler *Handler) GetVenueByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVenueByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	venue, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get venue by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Venue retrieved successfully")

	response.WithJSON(w, http.StatusOK, venue)
}

// GetVenueBySlug retrieves a venue by its slug.
// @Summary Get a venue by slug
// @Description Retrieve an active venue by its URL slug.
// @Tags Venue
// @Accept json
// @Produce json
// @Param slug path string true "Venue slug"
// @Success 200 {object} dto.VenueResponse "Venue details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/slug/{slug} [get]
func (handler *Handler) GetVenueBySlug(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVenueBySlug")
	defer scope.End()

	slug := chi.URLParam(r, constant.RequestParamSlug)

	venue, err := handler.service.GetBySlug(ctx, slug)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get venue by slug")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Venue retrieved successfully")

	response.WithJSON(w, http.StatusOK, venue)
}

// CreateVenue creates a new venue listing.
// @Summary Create a venue
// @Description Create a new venue listing. Admin only.
// @Tags Venue
// @Accept json
// @Produce json
// @Param request body dto.CreateVenueRequest true "Create Venue Request"
// @Success 201 {object} dto.VenueResponse "Venue created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/venues [post]
// @Security BearerAuth
func (handler *Handler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateVenue")
	defer scope.End()

	req := dto.CreateVenueRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	venue, err := handler.service.Create(ctx, gModel.ActorFromContext(ctx), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create venue")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Venue created successfully")

	response.WithJSON(w, http.StatusCreated, venue)
}

// UpdateVenue updates an existing venue.
// @Summary Update a venue
// @Description Update a venue's listing details. Venue owner or admin only.
// @Tags Venue
// @Accept json
// @Produce json
// @Param id path string true "Venue ID"
// @Param request body dto.UpdateVenueRequest true "Update Venue Request"
// @Success 200 {object} response.Message "Venue updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/venues/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateVenue")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateVenueRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, gModel.ActorFromContext(ctx), req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update venue")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Venue updated successfully")

	response.WithMessage(w, http.StatusOK, "Venue updated successfully")
}

// DeactivateVenue removes a venue from the directory.
// @Summary Deactivate a venue
// @Description Soft-delete a venue so it no longer appears in listings. Venue owner or admin only.
// @Tags Venue
// @Accept json
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} response.Message "Venue deactivated successfully"
// @Failure 404 {object} response.Error
// @Router /v1/venues/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeactivateVenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeactivateVenue")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Deactivate(ctx, gModel.ActorFromContext(ctx), id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to deactivate venue")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Venue deactivated successfully")

	response.WithMessage(w, http.StatusOK, "Venue deactivated successfully")
}

// GetVenueTables lists a venue's pool tables.
// @Summary List a venue's tables
// @Description List the venue's pool tables in display order.
// @Tags PoolTable
// @Accept json
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} tableDto.GetPoolTablesResponse "Pool tables"
// @Failure 500 {object} response.Error
// @Router /v1/venues/{id}/tables [get]
func (handler *Handler) GetVenueTables(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVenueTables")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	tables, err := handler.tableService.ListByVenue(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get venue tables")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Venue tables retrieved successfully")

	response.WithJSON(w, http.StatusOK, tables)
}

// CreatePoolTable adds a pool table to a venue.
// @Summary Add a pool table
// @Description Add a pool table to a venue. Venue owner or admin only.
// @Tags PoolTable
// @Accept json
// @Produce json
// @Param id path string true "Venue ID"
// @Param request body tableDto.CreatePoolTableRequest true "Create Pool Table Request"
// @Success 201 {object} tableDto.PoolTableResponse "Pool table created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/venues/{id}/tables [post]
// @Security BearerAuth
func (handler *Handler) CreatePoolTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePoolTable")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := tableDto.CreatePoolTableRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	table, err := handler.tableService.Create(ctx, gModel.ActorFromContext(ctx), id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create pool table")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Pool table created successfully")

	response.WithJSON(w, http.StatusCreated, table)
}

// GetVenueHours lists a venue's weekly hours.
// @Summary Get a venue's hours
// @Description List the venue's weekly operating hours, one entry per weekday.
// @Tags Hours
// @Accept json
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} hoursDto.GetHoursResponse "Weekly hours"
// @Failure 500 {object} response.Error
// @Router /v1/venues/{id}/hours [get]
func (handler *Handler) GetVenueHours(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVenueHours")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	hours, err := handler.hoursService.ListByVenue(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get venue hours")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Venue hours retrieved successfully")

	response.WithJSON(w, http.StatusOK, hours)
}

// UpsertVenueHours replaces a venue's weekly hours.
// @Summary Set a venue's hours
// @Description Replace the venue's operating hours for the listed weekdays. Venue owner or admin only.
// @Tags Hours
// @Accept json
// @Produce json
// @Param id path string true "Venue ID"
// @Param request body hoursDto.UpsertHoursRequest true "Upsert Hours Request"
// @Success 200 {object} response.Message "Venue hours updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/venues/{id}/hours [put]
// @Security BearerAuth
func (handler *Handler) UpsertVenueHours(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertVenueHours")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := hoursDto.UpsertHoursRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.hoursService.Upsert(ctx, gModel.ActorFromContext(ctx), id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upsert venue hours")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Venue hours updated successfully")

	response.WithMessage(w, http.StatusOK, "Venue hours updated successfully")
}

// GetAvailability returns a venue's bookable slots for a date.
// @Summary Check availability
// @Description List the venue's time slots for a date with the number of free tables per slot.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Venue ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resDto.AvailabilityResponse "Availability slots"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/venues/{id}/availability [get]
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	date := r.URL.Query().Get(constant.RequestParamDate)

	availability, err := handler.resService.CheckAvailability(ctx, id, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Availability retrieved successfully")

	response.WithJSON(w, http.StatusOK, availability)
}

// GetVenueReviews lists a venue's reviews.
// @Summary List a venue's reviews
// @Description List the venue's reviews, newest first, with pagination.
// @Tags Review
// @Accept json
// @Produce json
// @Param id path string true "Venue ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} reviewDto.GetReviewsResponse "Reviews"
// @Failure 500 {object} response.Error
// @Router /v1/venues/{id}/reviews [get]
func (handler *Handler) GetVenueReviews(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVenueReviews")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	reviews, err := handler.reviewService.ListByVenue(ctx, id, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get venue reviews")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Venue reviews retrieved successfully")

	response.WithJSON(w, http.StatusOK, reviews)
}

// CreateReview posts a review for a venue.
// @Summary Review a venue
// @Description Post a review for a venue. One review per guest per venue; reviews from guests with a completed reservation are marked verified.
// @Tags Review
// @Accept json
// @Produce json
// @Param id path string true "Venue ID"
// @Param request body reviewDto.CreateReviewRequest true "Create Review Request"
// @Success 201 {object} reviewDto.ReviewResponse "Review created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/venues/{id}/reviews [post]
// @Security BearerAuth
func (handler *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReview")
	defer scope.End()

	req := reviewDto.CreateReviewRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	req.VenueID = chi.URLParam(r, constant.RequestParamID)

	review, err := handler.reviewService.Create(ctx, gModel.ActorFromContext(ctx), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create review")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Review created successfully")

	response.WithJSON(w, http.StatusCreated, review)
}

// GetVenueReservations lists a venue's reservations for its owner.
// @Summary List a venue's reservations
// @Description List the venue's reservations, newest first. Venue owner or admin only.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Venue ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} resDto.GetReservationsResponse "Reservations"
// @Failure 404 {object} response.Error
// @Router /v1/venues/{id}/reservations [get]
// @Security BearerAuth
func (handler *Handler) GetVenueReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVenueReservations")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	reservations, err := handler.resService.ListByVenue(ctx, gModel.ActorFromContext(ctx), id, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get venue reservations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Venue reservations retrieved successfully")

	response.WithJSON(w, http.StatusOK, reservations)
}
