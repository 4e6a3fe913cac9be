package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if errs := cfg.Validate(); len(errs) > 0 {
		t.Errorf("default config should validate, got %v", ValidationErrors(errs))
	}
}

func TestLoad_FromViperDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.DepartmentsFile != "departments.json" {
		t.Errorf("DepartmentsFile = %q", cfg.Storage.DepartmentsFile)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Level = %q", cfg.Logging.Level)
	}
	if cfg.TUI.RefreshSeconds != 2 {
		t.Errorf("RefreshSeconds = %d", cfg.TUI.RefreshSeconds)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()
	viper.Set("logging.level", "verbose")
	viper.Set("tui.refresh_seconds", 0)

	if _, err := Load(); err == nil {
		t.Error("Load should reject invalid config")
	}
}

func TestStorageConfig_Paths(t *testing.T) {
	s := StorageConfig{
		Dir:             "/data/org",
		DepartmentsFile: "departments.json",
		UnitsFile:       "/absolute/units.json",
	}

	if got := s.DepartmentsPath(); got != filepath.Join("/data/org", "departments.json") {
		t.Errorf("DepartmentsPath() = %q", got)
	}
	// Absolute file paths ignore Dir.
	if got := s.UnitsPath(); got != "/absolute/units.json" {
		t.Errorf("UnitsPath() = %q", got)
	}

	// Empty dir falls back to the data directory.
	s.Dir = ""
	if got := s.ResolveDir(); got != DataDir() {
		t.Errorf("ResolveDir() = %q, want %q", got, DataDir())
	}
}

func TestValidate_Storage(t *testing.T) {
	cfg := Default()
	cfg.Storage.DepartmentsFile = ""
	errs := cfg.Validate()
	if len(errs) != 1 || errs[0].Field != "storage.departments_file" {
		t.Errorf("Validate() = %v", errs)
	}

	cfg = Default()
	cfg.Storage.UnitsFile = cfg.Storage.DepartmentsFile
	if errs := cfg.Validate(); len(errs) == 0 {
		t.Error("identical storage files should fail validation")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "a", Value: 1, Message: "bad"},
		{Field: "b", Value: 2, Message: "worse"},
	}
	msg := errs.Error()
	if msg == "" {
		t.Fatal("expected a message")
	}
	single := ValidationErrors{errs[0]}
	if single.Error() != errs[0].Error() {
		t.Error("single error should render without the count header")
	}
	if (ValidationErrors{}).Error() != "" {
		t.Error("empty errors should render empty")
	}
}
