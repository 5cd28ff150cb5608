package router

import (
	"rackcity/internal/handlers/claim"
	"rackcity/internal/handlers/lead"
	"rackcity/internal/handlers/pooltable"
	"rackcity/internal/handlers/reservation"
	"rackcity/internal/handlers/venue"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Venue       venue.Handler
	PoolTable   pooltable.Handler
	Reservation reservation.Handler
	Claim       claim.Handler
	Lead        lead.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Venue.Router(routerGroup)
		r.DomainHandlers.PoolTable.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Claim.Router(routerGroup)
		r.DomainHandlers.Lead.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
