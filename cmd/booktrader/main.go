package main

import (
	"context"
	"log/slog"
	"os"

	"booktrader/config"
	"booktrader/internal/delivery"
	"booktrader/internal/delivery/http"
	"booktrader/internal/delivery/http/middleware"
	"booktrader/internal/delivery/http/router/handler"
	"booktrader/internal/domain/repository"
	"booktrader/internal/infra/cache"
	"booktrader/internal/infra/catalog"
	"booktrader/internal/infra/gateway"
	logs "booktrader/internal/infra/log"
	"booktrader/internal/infra/persistence/sqlite"
	"booktrader/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		newSessionStore,
	)
}

// newSessionStore opens the store and ties its lifetime to the app.
func newSessionStore(lc fx.Lifecycle, cfg *config.Config) (repository.SessionStore, error) {
	store, err := sqlite.NewSessionStore(cfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return store.Close()
		},
	})

	return store, nil
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			cache.New,
			catalog.NewClient,
			gateway.NewClient,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSessionService,
			impl.NewCatalogService,
			impl.NewTradeService,
			impl.NewQueryRouter,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewRequestIDMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewQueryHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
