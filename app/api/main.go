package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/x-xyz/escrow/app/internal/setup"
	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/base/goroutine"
	"github.com/x-xyz/escrow/base/log"
	bValidator "github.com/x-xyz/escrow/base/validator"
	mmiddleware "github.com/x-xyz/escrow/middleware"
	auth_delivery "github.com/x-xyz/escrow/stores/auth/delivery/http"
	auth_middleware "github.com/x-xyz/escrow/stores/auth/delivery/http/middleware"
	event_delivery "github.com/x-xyz/escrow/stores/event/delivery/http"
	fee_delivery "github.com/x-xyz/escrow/stores/fee/delivery/http"
	hc_delivery "github.com/x-xyz/escrow/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/escrow/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/escrow/stores/healthcheck/usecase"
	listing_delivery "github.com/x-xyz/escrow/stores/listing/delivery/http"
	reconciliation_delivery "github.com/x-xyz/escrow/stores/reconciliation/delivery/http"
)

func init() {
	if err := setup.LoadConfig(os.Args[1:]); err != nil {
		panic(err)
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middL.CORS)
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	stores, err := setup.New(context)
	if err != nil {
		context.WithField("err", err).Panic("setup.New failed")
	}

	hc := hc_usecase.New(hc_repo.New(stores.MongoClient, stores.RedisCache))
	authMiddleware := auth_middleware.New(stores.Auth, stores.Authorizer)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, stores.Auth, viper.GetString("auth.signatureMsg"))
	fee_delivery.New(e, stores.Fee, authMiddleware)
	listing_delivery.New(e, stores.Listings, authMiddleware)
	event_delivery.New(e, stores.Events)
	reconciliation_delivery.New(e, stores.Reconciliations, authMiddleware)

	goroutine.RecoverableGo(func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}, goroutine.WithName("echo"))

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
	stores.Close(ctx)
}
