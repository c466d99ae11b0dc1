package photonvox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "experiment.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadExperimentConfigOverlay(t *testing.T) {
	path := writeConfig(t, `
payload_size = 512
max_noise = 2.5
sigma_phase = 0.2
crosstalk_width = 8
crosstalk_height = 8
crosstalk_factor = 0.02
`)
	cfg, err := LoadExperimentConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PayloadSize != 512 || cfg.MaxNoise != 2.5 {
		t.Fatalf("file keys not applied: %+v", cfg)
	}
	// Keys absent from the file keep their defaults.
	def := DefaultExperimentConfig()
	if cfg.Steps != def.Steps || cfg.Output != def.Output {
		t.Fatalf("defaults lost: %+v", cfg)
	}
	if cfg.Noise.Phase != 0.2 || cfg.Noise.Intensity != def.Noise.Intensity {
		t.Fatalf("sigma overlay wrong: %+v", cfg.Noise)
	}
	if cfg.Crosstalk != (CrosstalkConfig{Width: 8, Height: 8, Factor: 0.02}) {
		t.Fatalf("crosstalk overlay wrong: %+v", cfg.Crosstalk)
	}
}

func TestLoadExperimentConfigEmptyFileIsDefaults(t *testing.T) {
	cfg, err := LoadExperimentConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PayloadSize != DefaultExperimentConfig().PayloadSize {
		t.Fatalf("empty file should yield defaults: %+v", cfg)
	}
}

func TestLoadExperimentConfigValidation(t *testing.T) {
	cases := map[string]string{
		"payload_size must be positive": "payload_size = 0",
		"steps must be positive":        "steps = -3",
		"max_noise must be non-negative": "max_noise = -1.0",
	}
	for wantSub, body := range cases {
		_, err := LoadExperimentConfig(writeConfig(t, body))
		if err == nil || !strings.Contains(err.Error(), wantSub) {
			t.Fatalf("config %q: got error %v, want it to mention %q", body, err, wantSub)
		}
	}
}

func TestLoadExperimentConfigMissingFile(t *testing.T) {
	if _, err := LoadExperimentConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestLoadExperimentConfigBadTOML(t *testing.T) {
	if _, err := LoadExperimentConfig(writeConfig(t, "steps = [")); err == nil {
		t.Fatal("expected a parse error")
	}
}
