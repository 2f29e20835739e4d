package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/wricardo/memory-game/game/engine"
	"github.com/wricardo/memory-game/game/service"
)

func createValidConfig() *engine.BoardConfig {
	return &engine.BoardConfig{
		Name:          "test",
		Description:   "Test configuration",
		Columns:       4,
		Rows:          4,
		CardTypeCount: 4,
	}
}

func writeConfig(t *testing.T, dir, name string, config any) {
	t.Helper()
	data, err := json.Marshal(config)
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".json"), data, 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := NewManager(filepath.Join(t.TempDir(), "nope"))
		if err == nil {
			t.Error("Expected error for missing config directory")
		}
	})

	t.Run("empty directory falls back to built-in board", func(t *testing.T) {
		manager, err := NewManager(t.TempDir())
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		def := manager.GetDefault()
		if def.Columns != engine.DefaultColumns || def.Rows != engine.DefaultRows || def.CardTypeCount != engine.DefaultCardTypeCount {
			t.Errorf("Unexpected built-in default: %+v", def)
		}
	})

	t.Run("classic preferred", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "aaa", createValidConfig())
		classic := createValidConfig()
		classic.Name = "classic"
		writeConfig(t, dir, "classic", classic)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatal(err)
		}
		if manager.GetDefault().Name != "classic" {
			t.Errorf("Expected classic default, got %s", manager.GetDefault().Name)
		}
	})

	t.Run("first valid preset without classic", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "aaa", map[string]any{"name": "broken", "columns": 3, "rows": 3, "card_type_count": 2})
		second := createValidConfig()
		second.Name = "second"
		writeConfig(t, dir, "bbb", second)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatal(err)
		}
		if manager.GetDefault().Name != "second" {
			t.Errorf("Expected first valid preset as default, got %s", manager.GetDefault().Name)
		}
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "valid", createValidConfig())
	writeConfig(t, dir, "odd", map[string]any{"name": "odd", "columns": 3, "rows": 3, "card_type_count": 2})
	if err := os.WriteFile(filepath.Join(dir, "garbage.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		config  string
		wantErr error
	}{
		{"valid", "valid", nil},
		{"with extension", "valid.json", nil},
		{"missing", "missing", service.ErrConfigNotFound},
		{"path traversal", "../valid", service.ErrConfigNotFound},
		{"odd cell count", "odd", ErrInvalidConfig},
		{"malformed json", "garbage", ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := manager.LoadConfig(tt.config)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if config.Pairs() != 8 {
				t.Errorf("Expected 8 pairs, got %d", config.Pairs())
			}
		})
	}

	t.Run("cached", func(t *testing.T) {
		first, _ := manager.LoadConfig("valid")
		second, _ := manager.LoadConfig("valid")
		if first != second {
			t.Error("Expected cached config to be returned")
		}
	})
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"zeta", "alpha"} {
		config := createValidConfig()
		config.Name = name
		writeConfig(t, dir, name, config)
	}
	writeConfig(t, dir, "broken", map[string]any{"name": ""})
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0755); err != nil {
		t.Fatal(err)
	}

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	configs, err := manager.ListConfigs()
	if err != nil {
		t.Fatal(err)
	}
	if len(configs) != 2 {
		t.Fatalf("Expected 2 valid configs, got %d", len(configs))
	}
	if configs[0].ConfigID != "alpha" || configs[1].ConfigID != "zeta" {
		t.Errorf("Expected configs sorted by ID, got %s, %s", configs[0].ConfigID, configs[1].ConfigID)
	}
	if configs[0].Filename != "alpha.json" || configs[0].Pairs != 8 {
		t.Errorf("Unexpected info: %+v", configs[0])
	}
}

func TestManager_SetDefaultAndRefresh(t *testing.T) {
	dir := t.TempDir()
	easy := createValidConfig()
	easy.Name = "easy"
	writeConfig(t, dir, "easy", easy)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := manager.SetDefault("missing"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}

	big := createValidConfig()
	big.Name = "big"
	big.Columns = 10
	if err := manager.SaveConfig("big", big); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}
	if err := manager.SetDefault("big"); err != nil {
		t.Fatal(err)
	}
	if manager.GetDefault().Columns != 10 {
		t.Errorf("Expected big default, got %+v", manager.GetDefault())
	}

	// Edit on disk; the cache keeps the old value until refreshed
	big.Columns = 12
	writeConfig(t, dir, "big", big)
	if cached, _ := manager.LoadConfig("big"); cached.Columns != 10 {
		t.Errorf("Expected cached columns 10, got %d", cached.Columns)
	}

	manager.RefreshCache()
	if fresh, _ := manager.LoadConfig("big"); fresh.Columns != 12 {
		t.Errorf("Expected refreshed columns 12, got %d", fresh.Columns)
	}
	if manager.GetDefault().Name != "big" {
		t.Errorf("Expected first valid preset after refresh, got %s", manager.GetDefault().Name)
	}
}

func TestManager_SaveConfigRejectsInvalid(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	invalid := createValidConfig()
	invalid.CardTypeCount = 0
	if err := manager.SaveConfig("invalid", invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
	if err := manager.SaveConfig("../escape", createValidConfig()); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for bad name, got %v", err)
	}
}

func TestManager_ConcurrentLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "valid", createValidConfig())

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := manager.LoadConfig("valid"); err != nil {
				t.Errorf("Concurrent load failed: %v", err)
			}
			manager.GetDefault()
		}()
	}
	wg.Wait()
}
