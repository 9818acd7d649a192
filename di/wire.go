//go:build wireinject
// +build wireinject

package di

import (
	"staysync/config"
	"staysync/infras/browser"
	"staysync/infras/kafka"
	"staysync/infras/otel"
	"staysync/infras/postgres"
	"staysync/infras/redis"
	"staysync/infras/s3"
	"staysync/internal/platform"
	"staysync/shared/cache"
	"staysync/shared/emailparse"
	"staysync/transport/http"
	"staysync/transport/http/middleware"
	"staysync/transport/http/router"

	bookingRepository "staysync/internal/domains/booking/repository"
	bookingService "staysync/internal/domains/booking/service"
	syncService "staysync/internal/domains/sync/service"
	bookingHandler "staysync/internal/handlers/booking"
	webhookHandler "staysync/internal/handlers/webhook"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
	s3.New,
	browser.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	emailparse.NewParser,
)

var platformAutomation = wire.NewSet(
	platform.NewSnapshotStore,
	platform.NewBlocker,
)

var bookingDomain = wire.NewSet(
	bookingRepository.NewBooking,
	bookingRepository.NewTask,
	bookingService.New,
)

var syncDomain = wire.NewSet(
	syncService.New,
)

var domains = wire.NewSet(
	bookingDomain,
	syncDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	webhookHandler.New,
	bookingHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		platformAutomation,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil
}
