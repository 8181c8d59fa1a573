package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pricelab/pricing-sim/internal/api"
	"github.com/pricelab/pricing-sim/internal/config"
	"github.com/pricelab/pricing-sim/internal/data"
	"github.com/pricelab/pricing-sim/internal/logging"
	"github.com/pricelab/pricing-sim/internal/model"
	"github.com/pricelab/pricing-sim/internal/service"
	"github.com/pricelab/pricing-sim/pkg/constants"
)

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	logger, err := logging.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	svc := service.New(logger)

	// Preload a dataset when one is configured; the API can also load data
	// at runtime via /api/v1/data/load or /api/v1/data/demo.
	if conf.Data.Demo || conf.Data.ProductsFile != "" {
		products, history, err := data.Load(conf.Data.Format, conf.Data.ProductsFile, conf.Data.HistoryFile, conf.Data.Demo)
		if err != nil {
			logger.Fatal("failed to load dataset",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		products = data.DeriveVolumes(products, history, constants.DefaultFallbackVolume)
		if _, err := svc.LoadSnapshot(products, history); err != nil {
			logger.Fatal("failed to load snapshot",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		if _, err := svc.CalculateElasticity(model.Method(conf.Elasticity.Method), conf.Elasticity.Overrides, conf.Elasticity.EstimateCross); err != nil {
			logger.Fatal("failed to calculate elasticities",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}

	router := api.NewRouter(logger, svc)

	logger.Info("starting API server",
		zap.String("op", "main"),
		zap.String("address", conf.Server.Address),
	)
	if err := router.Run(conf.Server.Address); err != nil {
		logger.Fatal("server exited",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
