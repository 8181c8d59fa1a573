// Package data loads product catalogs and historical observations from CSV
// or YAML files and provides a seeded synthetic dataset for demos and tests.
// It is a collaborator of the core engine: it owns file formats, the engine
// only sees the typed slices.
package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pricelab/pricing-sim/internal/model"
)

// productColumns is the required header of a products CSV file.
var productColumns = []string{"product_id", "name", "category", "current_price", "current_volume", "unit_cost"}

// historyColumns is the required header of a history CSV file.
var historyColumns = []string{"period", "product_id", "price", "volume"}

// LoadProductsCSV reads a product catalog from path.
func LoadProductsCSV(path string) ([]model.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open products file: %w", err)
	}
	defer f.Close()
	return ReadProductsCSV(f)
}

// ReadProductsCSV parses a product catalog from r.
func ReadProductsCSV(r io.Reader) ([]model.Product, error) {
	rows, err := readRows(r, productColumns)
	if err != nil {
		return nil, err
	}

	products := make([]model.Product, 0, len(rows))
	for i, row := range rows {
		price, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("products row %d: invalid current_price %q", i+2, row[3])
		}
		volume, err := strconv.ParseFloat(row[4], 64)
		if err != nil {
			return nil, fmt.Errorf("products row %d: invalid current_volume %q", i+2, row[4])
		}
		cost, err := strconv.ParseFloat(row[5], 64)
		if err != nil {
			return nil, fmt.Errorf("products row %d: invalid unit_cost %q", i+2, row[5])
		}
		products = append(products, model.Product{
			ID:            row[0],
			Name:          row[1],
			Category:      row[2],
			CurrentPrice:  price,
			CurrentVolume: volume,
			UnitCost:      cost,
		})
	}
	return products, nil
}

// LoadHistoryCSV reads historical observations from path.
func LoadHistoryCSV(path string) ([]model.HistoricalObservation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()
	return ReadHistoryCSV(f)
}

// ReadHistoryCSV parses historical observations from r.
func ReadHistoryCSV(r io.Reader) ([]model.HistoricalObservation, error) {
	rows, err := readRows(r, historyColumns)
	if err != nil {
		return nil, err
	}

	observations := make([]model.HistoricalObservation, 0, len(rows))
	for i, row := range rows {
		price, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("history row %d: invalid price %q", i+2, row[2])
		}
		volume, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("history row %d: invalid volume %q", i+2, row[3])
		}
		observations = append(observations, model.HistoricalObservation{
			Period:    row[0],
			ProductID: row[1],
			Price:     price,
			Volume:    volume,
		})
	}
	return observations, nil
}

func readRows(r io.Reader, columns []string) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(columns) {
		return nil, fmt.Errorf("expected columns %v, got %v", columns, header)
	}
	for i, col := range columns {
		if header[i] != col {
			return nil, fmt.Errorf("expected column %d to be %q, got %q", i+1, col, header[i])
		}
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
