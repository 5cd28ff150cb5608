//go:build wireinject
// +build wireinject

package di

import (
	"rackcity/config"
	"rackcity/infras/jwt"
	"rackcity/infras/kafka"
	"rackcity/infras/otel"
	"rackcity/infras/postgres"
	"rackcity/infras/redis"
	"rackcity/infras/s3"
	"rackcity/internal/events/crm"
	"rackcity/permissions"
	"rackcity/shared/cache"
	"rackcity/transport/http"
	"rackcity/transport/http/middleware"
	"rackcity/transport/http/router"

	claimRepository "rackcity/internal/domains/claim/repository"
	claimService "rackcity/internal/domains/claim/service"
	hoursRepository "rackcity/internal/domains/hours/repository"
	hoursService "rackcity/internal/domains/hours/service"
	leadRepository "rackcity/internal/domains/lead/repository"
	leadService "rackcity/internal/domains/lead/service"
	pooltableRepository "rackcity/internal/domains/pooltable/repository"
	pooltableService "rackcity/internal/domains/pooltable/service"
	reservationRepository "rackcity/internal/domains/reservation/repository"
	reservationService "rackcity/internal/domains/reservation/service"
	reviewRepository "rackcity/internal/domains/review/repository"
	reviewService "rackcity/internal/domains/review/service"
	venueRepository "rackcity/internal/domains/venue/repository"
	venueService "rackcity/internal/domains/venue/service"

	claimHandler "rackcity/internal/handlers/claim"
	leadHandler "rackcity/internal/handlers/lead"
	pooltableHandler "rackcity/internal/handlers/pooltable"
	reservationHandler "rackcity/internal/handlers/reservation"
	venueHandler "rackcity/internal/handlers/venue"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var events = wire.NewSet(
	crm.NewProducer,
)

var venueDomain = wire.NewSet(
	venueRepository.New,
	venueService.New,
)

var pooltableDomain = wire.NewSet(
	pooltableRepository.New,
	pooltableService.New,
)

var hoursDomain = wire.NewSet(
	hoursRepository.New,
	hoursService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var claimDomain = wire.NewSet(
	claimRepository.New,
	claimService.New,
)

var reviewDomain = wire.NewSet(
	reviewRepository.New,
	reviewService.New,
)

var leadDomain = wire.NewSet(
	leadRepository.New,
	leadService.New,
)

var domains = wire.NewSet(
	venueDomain,
	pooltableDomain,
	hoursDomain,
	reservationDomain,
	claimDomain,
	reviewDomain,
	leadDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	venueHandler.New,
	pooltableHandler.New,
	reservationHandler.New,
	claimHandler.New,
	leadHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		events,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() *crm.Consumer {
	wire.Build(
		config.Get,
		kafka.New,
		crm.NewConsumer,
	)

	return &crm.Consumer{}
}
