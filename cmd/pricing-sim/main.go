package main

import (
	"flag"
	"fmt"

	"go.uber.org/zap"

	"github.com/pricelab/pricing-sim/internal/config"
	"github.com/pricelab/pricing-sim/internal/data"
	"github.com/pricelab/pricing-sim/internal/logging"
	"github.com/pricelab/pricing-sim/internal/model"
	"github.com/pricelab/pricing-sim/internal/service"
	"github.com/pricelab/pricing-sim/pkg/constants"
	"github.com/pricelab/pricing-sim/pkg/output"
	"github.com/pricelab/pricing-sim/pkg/summary"
	"github.com/pricelab/pricing-sim/pkg/validation"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
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

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	products, history, err := data.Load(conf.Data.Format, conf.Data.ProductsFile, conf.Data.HistoryFile, conf.Data.Demo)
	if err != nil {
		logger.Fatal("failed to load dataset",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	products = data.DeriveVolumes(products, history, constants.DefaultFallbackVolume)

	svc := service.New(logger)
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

	scenario := model.ScenarioInput(conf.Scenario.Deltas)
	results, err := svc.Simulate(scenario)
	if err != nil {
		logger.Fatal("failed to simulate scenario",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(results, summary.Aggregate(results))
	case constants.OutputFormatCSV:
		output.CsvFormat(results)
	}

	if conf.Optimizer.Enabled {
		result, err := svc.Optimize(conf.Optimizer.Objective, conf.Optimizer.SearchConfig(), conf.Constraints)
		if err != nil {
			logger.Fatal("failed to optimize prices",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		output.PrettyOptimization(result)
	}
}
