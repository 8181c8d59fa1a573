// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/pricelab/pricing-sim/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ValidateDataFormat checks if the data file format is supported.
func ValidateDataFormat(format string) error {
	if format != constants.DataFormatCSV && format != constants.DataFormatYAML {
		return fmt.Errorf("expected data format of %s or %s, got %s",
			constants.DataFormatCSV, constants.DataFormatYAML, format)
	}
	return nil
}
