package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pricelab/pricing-sim/internal/model"
)

// Dataset is the YAML file layout for a combined products + history file.
type Dataset struct {
	Products []model.Product               `yaml:"products"`
	History  []model.HistoricalObservation `yaml:"history,omitempty"`
}

// LoadProductsYAML reads a product catalog from a YAML dataset file.
func LoadProductsYAML(path string) ([]model.Product, error) {
	ds, err := loadDataset(path)
	if err != nil {
		return nil, err
	}
	return ds.Products, nil
}

// LoadHistoryYAML reads historical observations from a YAML dataset file.
func LoadHistoryYAML(path string) ([]model.HistoricalObservation, error) {
	ds, err := loadDataset(path)
	if err != nil {
		return nil, err
	}
	return ds.History, nil
}

func loadDataset(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset file: %w", err)
	}
	var ds Dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("parse dataset file: %w", err)
	}
	return &ds, nil
}

// MarshalDataset serializes a dataset to YAML, e.g. for the API's catalog
// export endpoint.
func MarshalDataset(products []model.Product, history []model.HistoricalObservation) ([]byte, error) {
	return yaml.Marshal(Dataset{Products: products, History: history})
}
