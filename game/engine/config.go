package engine

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultBoardConfig returns the classic 6 columns by 8 rows board with 6 card types
func DefaultBoardConfig() BoardConfig {
	return BoardConfig{
		Name:          "classic",
		Description:   "Classic 6x8 board with 6 card types",
		Columns:       DefaultColumns,
		Rows:          DefaultRows,
		CardTypeCount: DefaultCardTypeCount,
	}
}

// ValidateBoardConfig validates a board configuration for correctness and playability
func ValidateBoardConfig(config *BoardConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: %w: config is nil", ErrInvalidArgument)
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: %w: name is required", ErrInvalidArgument)
	}

	if config.Columns < MinBoardDimension || config.Columns > MaxBoardDimension {
		return fmt.Errorf("config validation: %w: columns must be between %d and %d, got %d",
			ErrInvalidSize, MinBoardDimension, MaxBoardDimension, config.Columns)
	}
	if config.Rows < MinBoardDimension || config.Rows > MaxBoardDimension {
		return fmt.Errorf("config validation: %w: rows must be between %d and %d, got %d",
			ErrInvalidSize, MinBoardDimension, MaxBoardDimension, config.Rows)
	}
	if config.Cells()%2 != 0 {
		return fmt.Errorf("config validation: %w: %dx%d has an odd number of cells",
			ErrInvalidSize, config.Columns, config.Rows)
	}

	if config.CardTypeCount < MinCardTypes || config.CardTypeCount > MaxCardTypes {
		return fmt.Errorf("config validation: %w: card_type_count must be between %d and %d, got %d",
			ErrInvalidArgument, MinCardTypes, MaxCardTypes, config.CardTypeCount)
	}

	return nil
}

// LoadBoardConfig loads and validates a board configuration from a JSON file
func LoadBoardConfig(filename string) (*BoardConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config BoardConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filename, err)
	}

	if err := ValidateBoardConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
