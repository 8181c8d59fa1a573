// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/pricelab/pricing-sim/internal/model"
	"github.com/pricelab/pricing-sim/internal/optimizer"
	"github.com/pricelab/pricing-sim/pkg/constants"
)

// Configuration holds all configuration for pricing-sim.
type Configuration struct {
	Logging     LoggingConfig      `yaml:"logging,omitempty"`
	Server      ServerConfig       `yaml:"server,omitempty"`
	Data        DataConfig         `yaml:"data,omitempty"`
	Elasticity  ElasticityConfig   `yaml:"elasticity,omitempty"`
	Scenario    ScenarioConfig     `yaml:"scenario,omitempty"`
	Optimizer   OptimizerConfig    `yaml:"optimizer,omitempty"`
	Constraints []model.Constraint `yaml:"constraints,omitempty"`
	Output      OutputConfig       `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// ServerConfig holds the API server options.
type ServerConfig struct {
	Address string `yaml:"address,omitempty"`
}

// DataConfig points at the product and history files, or selects the
// built-in demo dataset.
type DataConfig struct {
	Format       string `yaml:"format,omitempty"` // csv, yaml
	ProductsFile string `yaml:"productsFile,omitempty"`
	HistoryFile  string `yaml:"historyFile,omitempty"`
	Demo         bool   `yaml:"demo,omitempty"`
}

// ElasticityConfig selects the estimation method and manual overrides.
type ElasticityConfig struct {
	Method        string             `yaml:"method,omitempty"` // log_log, arc, manual
	EstimateCross bool               `yaml:"estimateCross,omitempty"`
	Overrides     map[string]float64 `yaml:"overrides,omitempty"`
}

// ScenarioConfig is the price-change scenario evaluated by the CLI.
type ScenarioConfig struct {
	Deltas map[string]float64 `yaml:"deltas,omitempty"`
}

// OptimizerConfig enables and tunes the price search.
type OptimizerConfig struct {
	Enabled   bool    `yaml:"enabled,omitempty"`
	Objective string  `yaml:"objective,omitempty"` // profit, revenue, volume
	MinDelta  float64 `yaml:"minDelta,omitempty"`
	MaxDelta  float64 `yaml:"maxDelta,omitempty"`
	Step      float64 `yaml:"step,omitempty"`
	Tolerance float64 `yaml:"tolerance,omitempty"`
	MaxPasses int     `yaml:"maxPasses,omitempty"`
}

// SearchConfig converts the YAML options into the optimizer's search config.
func (o OptimizerConfig) SearchConfig() optimizer.SearchConfig {
	return optimizer.SearchConfig{
		MinDelta:  o.MinDelta,
		MaxDelta:  o.MaxDelta,
		Step:      o.Step,
		Tolerance: o.Tolerance,
		MaxPasses: o.MaxPasses,
	}
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.applyDefaults()
	return &configuration, nil
}

func (conf *Configuration) applyDefaults() {
	if conf.Server.Address == "" {
		conf.Server.Address = constants.DefaultServerAddress
	}
	if conf.Data.Format == "" {
		conf.Data.Format = constants.DataFormatCSV
	}
	if conf.Elasticity.Method == "" {
		conf.Elasticity.Method = string(model.MethodLogLog)
	}
	if conf.Optimizer.Objective == "" {
		conf.Optimizer.Objective = string(optimizer.ObjectiveProfit)
	}
	if conf.Output.Format == "" {
		conf.Output.Format = constants.OutputFormatPretty
	}
}

// ValidateConfiguration checks settings that would otherwise surface as
// confusing runtime failures and returns human-readable warnings.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if !model.ValidMethod(model.Method(conf.Elasticity.Method)) {
		warnings = append(warnings, fmt.Sprintf("unsupported elasticity method %q; falling back to %s", conf.Elasticity.Method, model.MethodLogLog))
		conf.Elasticity.Method = string(model.MethodLogLog)
	}
	if conf.Elasticity.Method == string(model.MethodManual) && len(conf.Elasticity.Overrides) == 0 {
		warnings = append(warnings, "elasticity method is manual but no overrides are configured; all products will lack models")
	}

	if _, err := optimizer.ParseObjective(conf.Optimizer.Objective); err != nil {
		warnings = append(warnings, fmt.Sprintf("invalid optimizer objective %q; falling back to %s", conf.Optimizer.Objective, optimizer.ObjectiveProfit))
		conf.Optimizer.Objective = string(optimizer.ObjectiveProfit)
	}
	if conf.Optimizer.MinDelta > conf.Optimizer.MaxDelta {
		warnings = append(warnings, fmt.Sprintf("optimizer minDelta %v exceeds maxDelta %v; defaults will be used", conf.Optimizer.MinDelta, conf.Optimizer.MaxDelta))
		conf.Optimizer.MinDelta = 0
		conf.Optimizer.MaxDelta = 0
	}

	for i, c := range conf.Constraints {
		switch c.Kind {
		case model.ConstraintMaxIncrease, model.ConstraintMaxDecrease, model.ConstraintMinMargin:
		default:
			warnings = append(warnings, fmt.Sprintf("constraint %d: unknown kind %q", i, c.Kind))
		}
		switch c.Scope {
		case model.ScopeGlobal:
		case model.ScopeProduct:
			if c.ProductID == "" {
				warnings = append(warnings, fmt.Sprintf("constraint %d: product scope requires a productId", i))
			}
		default:
			warnings = append(warnings, fmt.Sprintf("constraint %d: unknown scope %q", i, c.Scope))
		}
	}

	if !conf.Data.Demo && conf.Data.ProductsFile == "" {
		warnings = append(warnings, "no products file configured and demo data disabled; nothing to load")
	}

	return warnings
}
