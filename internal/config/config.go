package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Path is the sandbox preferences file, relative to the process working directory.
const Path = "config/sandbox.json"

// Prefs holds sandbox preferences persisted across runs (debug overlays, event
// logging, recipe overrides). The scene model path is a required CLI argument,
// not a preference.
type Prefs struct {
	ShowFPS      bool   `json:"show_fps"`
	ShowMemAlloc bool   `json:"show_memalloc"`
	ShowCounts   bool   `json:"show_counts"`
	LogEvents    bool   `json:"log_events"`
	LogContacts  bool   `json:"log_contacts"`
	RecipesPath  string `json:"recipes_path,omitempty"`
}

// Default returns default preferences (overlays off, event logging on,
// recipes from assets/recipes.yaml when present).
func Default() Prefs {
	return Prefs{
		LogEvents:   true,
		RecipesPath: "assets/recipes.yaml",
	}
}

// Load reads preferences from config/sandbox.json. If the file is missing or
// invalid, returns Default() and does not create a file.
func Load() (Prefs, error) {
	data, err := os.ReadFile(Path)
	if err != nil {
		return Default(), nil
	}
	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p, nil
}

// Save writes preferences to config/sandbox.json, creating the config
// directory if needed.
func Save(p Prefs) error {
	dir := filepath.Dir(Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(Path, data, 0644)
}
