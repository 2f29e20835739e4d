// Package config provides configuration management for the memory game.
//
// The config package handles:
//   - Loading board presets from JSON files
//   - Preset validation through engine.ValidateBoardConfig
//   - Default preset selection
//   - Process settings read from the environment
//
// Preset Format:
//
// Each preset is a JSON file in the configs directory; its file name without
// the extension is the config ID used to create sessions:
//
//	{
//	  "name": "classic",
//	  "description": "Classic 6x8 board with 6 card types",
//	  "columns": 6,
//	  "rows": 8,
//	  "card_type_count": 6
//	}
//
// The default preset is classic.json when it exists, otherwise the first valid
// preset by ID, otherwise the built-in 6x8 board.
//
// Usage:
//
//	settings, err := config.LoadSettings()
//	if err != nil {
//		return err
//	}
//
//	manager, err := config.NewManager(settings.ConfigDir)
//	if err != nil {
//		return err
//	}
//
//	board, err := manager.LoadConfig("easy")
//	presets, err := manager.ListConfigs()
package config
