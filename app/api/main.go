package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/rebooked/goapi/base/ctx"
	"github.com/rebooked/goapi/base/log"
	"github.com/rebooked/goapi/base/metrics"
	"github.com/rebooked/goapi/base/poller"
	bValidator "github.com/rebooked/goapi/base/validator"
	"github.com/rebooked/goapi/domain"
	mmiddleware "github.com/rebooked/goapi/middleware"
	"github.com/rebooked/goapi/service/aptos"
	activity_delivery "github.com/rebooked/goapi/stores/activity/delivery/http"
	activity_usecase "github.com/rebooked/goapi/stores/activity/usecase"
	hc_delivery "github.com/rebooked/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/rebooked/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/rebooked/goapi/stores/healthcheck/usecase"
	listing_delivery "github.com/rebooked/goapi/stores/listing/delivery/http"
	listing_repository "github.com/rebooked/goapi/stores/listing/repository"
	listing_usecase "github.com/rebooked/goapi/stores/listing/usecase"
	market_delivery "github.com/rebooked/goapi/stores/market/delivery/http"
	market_usecase "github.com/rebooked/goapi/stores/market/usecase"

	"github.com/rebooked/goapi/service/cache"
	"github.com/rebooked/goapi/service/cache/provider/primitive"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger(metrics.New("http")))
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init aptos fullnode client
	context.Info("init aptos client")
	aptosClient := aptos.NewClient(&aptos.ClientCfg{
		HttpClient: http.Client{},
		Endpoint:   viper.GetString("aptos.endpoint"),
		Timeout:    viper.GetDuration("aptos.timeout"),
	})

	contractAddress := domain.Address(viper.GetString("contract.address")).ToLower()
	moduleName := viper.GetString("contract.module")

	chainRepo := listing_repository.NewChainRepo(&listing_repository.ChainRepoCfg{
		Client:          aptosClient,
		ContractAddress: contractAddress,
		ModuleName:      moduleName,
	})

	listingUseCase := listing_usecase.New(&listing_usecase.ListingUseCaseCfg{
		ChainRepo:  chainRepo,
		FanOutSize: viper.GetInt("listing.fanOutSize"),
	})

	activityUseCase := activity_usecase.New(&activity_usecase.ActivityUseCaseCfg{
		Client: aptosClient,
	})
	notifier := activity_usecase.NewNotifier()

	marketUseCase := market_usecase.New(&market_usecase.MarketUseCaseCfg{
		ContractAddress: contractAddress,
		ModuleName:      moduleName,
	})

	hcCache := cache.New(cache.ServiceConfig{
		Ttl:   time.Minute,
		Pfx:   "hc",
		Cache: primitive.NewPrimitive("healthcheck", 1),
	})
	healthCheckUseCase := hc_usecase.New(hc_repo.New(hcCache))

	historyLimit := viper.GetInt("activity.historyLimit")

	listing_delivery.New(e, listingUseCase)
	activity_delivery.New(e, &activity_delivery.HandlerCfg{
		Activity:        activityUseCase,
		Notifier:        notifier,
		ContractAddress: contractAddress,
		HistoryLimit:    historyLimit,
	})
	market_delivery.New(e, marketUseCase)
	hc_delivery.New(e, healthCheckUseCase)

	// background refresh of the listings snapshot
	listingPoller := poller.New(&poller.Cfg{
		Name:         "listings",
		Interval:     viper.GetDuration("listing.pollInterval"),
		Task:         listingUseCase.RefreshSnapshot,
		BackoffStart: 5 * time.Second,
		BackoffLimit: time.Minute,
		MaxAttempts:  3,
		Metrics:      metrics.New("poller.listings"),
	})
	listingPoller.Start(context)

	// activity feed drives the notification inbox
	activityPoller := poller.New(&poller.Cfg{
		Name:     "activity",
		Interval: viper.GetDuration("activity.pollInterval"),
		Task: func(c ctx.Ctx) error {
			events, err := activityUseCase.GetMarketplaceEvents(c, contractAddress, historyLimit)
			if err != nil {
				return err
			}
			notifier.Observe(c, events)
			return nil
		},
		BackoffStart: time.Second,
		BackoffLimit: 30 * time.Second,
		MaxAttempts:  5,
		Metrics:      metrics.New("poller.activity"),
	})
	activityPoller.Start(context)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")

	listingPoller.Stop()
	activityPoller.Stop()

	shutdownCtx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
