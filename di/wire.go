//go:build wireinject
// +build wireinject

package di

import (
	"billiard/config"
	"billiard/infras/otel"
	"billiard/infras/postgres"
	"billiard/infras/redis"
	"billiard/permissions"
	"billiard/shared/cache"
	"billiard/transport/http"
	"billiard/transport/http/middleware"
	"billiard/transport/http/router"
	"billiard/transport/scheduler"

	bookingService "billiard/internal/domains/booking/service"
	occupationRepository "billiard/internal/domains/occupation/repository"
	occupationService "billiard/internal/domains/occupation/service"
	tableRepository "billiard/internal/domains/table/repository"
	tableService "billiard/internal/domains/table/service"
	waitingListRepository "billiard/internal/domains/waitinglist/repository"
	waitingListService "billiard/internal/domains/waitinglist/service"
	occupationHandler "billiard/internal/handlers/occupation"
	tableHandler "billiard/internal/handlers/table"
	waitingListHandler "billiard/internal/handlers/waitinglist"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var tableDomain = wire.NewSet(
	tableRepository.New,
	tableService.New,
)

var occupationDomain = wire.NewSet(
	occupationRepository.New,
	occupationService.New,
)

var bookingDomain = wire.NewSet(
	bookingService.New,
)

var waitingListDomain = wire.NewSet(
	waitingListRepository.New,
	waitingListService.New,
)

var domains = wire.NewSet(
	tableDomain,
	occupationDomain,
	bookingDomain,
	waitingListDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	tableHandler.New,
	occupationHandler.New,
	waitingListHandler.New,
	router.New,
)

var jobs = wire.NewSet(
	scheduler.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		jobs,
		http.New,
	)

	return &http.HTTP{}
}
