package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Dienay/rangos-api/internal/app"
	"github.com/Dienay/rangos-api/internal/config"
	"github.com/Dienay/rangos-api/internal/handler"
	"github.com/Dienay/rangos-api/internal/middleware"
	"github.com/Dienay/rangos-api/internal/postgres"
	"github.com/Dienay/rangos-api/internal/repo"
	"github.com/Dienay/rangos-api/internal/service"
	"github.com/Dienay/rangos-api/pkg/auth"
	"github.com/Dienay/rangos-api/pkg/cache"
	"github.com/Dienay/rangos-api/pkg/trm"

	"github.com/joho/godotenv"
)

func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	db, err := postgres.New(conf.Postgres)
	panicIfErr("failed to connect to db", err)
	defer db.Close()
	logger.Info("postgres connected")

	orderRepo := repo.NewOrderRepo(db)
	accountRepo := repo.NewAccountRepo(db)
	productRepo := repo.NewProductRepo(db)
	txManager := trm.NewManager(db)
	topCache := cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.TTL)
	tokens := auth.NewTokenManager(conf.Auth.Secret, conf.Auth.TokenTTL)

	resolver := service.NewEntityResolver(accountRepo)
	orderService := service.NewOrderService(logger, txManager, orderRepo, resolver, accountRepo, productRepo)
	productService := service.NewProductService(logger, productRepo, orderRepo, resolver, topCache)
	accountService := service.NewAccountService(logger, accountRepo, tokens)

	authMW := middleware.Auth(tokens)
	orderHandler := handler.NewOrderHandler(logger, authMW, orderService)
	productHandler := handler.NewProductHandler(logger, authMW, productService)
	accountHandler := handler.NewAccountHandler(logger, accountService)

	app := app.New(logger, conf)

	app.SetHTTPHandlers(orderHandler, productHandler, accountHandler)
	app.SetStarters(topCache, warmUpAdapter{svc: productService})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	panicIfErr("failed to start app", app.Start(ctx))
	<-ctx.Done()
	panicIfErr("failed to stop app", app.Stop())
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}

type warmUpper interface {
	WarmUp(ctx context.Context) error
}

type warmUpAdapter struct {
	svc warmUpper
}

func (a warmUpAdapter) Start(ctx context.Context) error {
	return a.svc.WarmUp(ctx)
}
