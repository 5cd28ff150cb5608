package pooltable

import (
	"net/http"

	"rackcity/infras/otel"
	"rackcity/internal/domains/pooltable/model/dto"
	"rackcity/internal/domains/pooltable/service"
	"rackcity/shared/constant"
	gModel "rackcity/shared/model"
	"rackcity/shared/validator"
	"rackcity/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.PoolTable
	otel    otel.Otel
}

func New(service service.PoolTable, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tables", func(routerGroup chi.Router) {
		routerGroup.Patch("/{id}", handler.UpdatePoolTable)
		routerGroup.Delete("/{id}", handler.DeletePoolTable)
	})
}

// UpdatePoolTable updates a pool table.
// @Summary Update a pool table
// @Description Update a pool table's details. Venue owner or admin only.
// @Tags PoolTable
// @Accept json
// @Produce json
// @Param id path string true "Pool Table ID"
// @Param request body dto.UpdatePoolTableRequest true "Update Pool Table Request"
// @Success 200 {object} response.Message "Pool table updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/tables/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePoolTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePoolTable")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdatePoolTableRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, gModel.ActorFromContext(ctx), req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update pool table")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Pool table updated successfully")

	response.WithMessage(w, http.StatusOK, "Pool table updated successfully")
}

// DeletePoolTable removes a pool table.
// @Summary Delete a pool table
// @Description Remove a pool table from its venue. Venue owner or admin only.
// @Tags PoolTable
// @Accept json
// @Produce json
// @Param id path string true "Pool Table ID"
// @Success 200 {object} response.Message "Pool table deleted successfully"
// @Failure 404 {object} response.Error
// @Router /v1/tables/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePoolTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePoolTable")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, gModel.ActorFromContext(ctx), id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete pool table")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Pool table deleted successfully")

	response.WithMessage(w, http.StatusOK, "Pool table deleted successfully")
}
