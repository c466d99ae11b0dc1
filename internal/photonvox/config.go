package photonvox

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// CrosstalkConfig declares the grid interpretation and coupling used
// when crosstalk is enabled in a pipeline. A zero Width or Height
// disables the model.
type CrosstalkConfig struct {
	Width  int
	Height int
	Factor Real
}

// ExperimentConfig drives RunExperiment.
type ExperimentConfig struct {
	PayloadSize int    // bytes tested per sweep point
	Steps       int    // sweep points beyond the zero-noise baseline
	MaxNoise    Real   // top sigma multiplier of the sweep
	Output      string // results CSV path
	Noise       NoiseParams
	Crosstalk   CrosstalkConfig
}

// DefaultExperimentConfig mirrors the reference experiment: a 10 kB
// payload over 20 steps. Amplitudes are sigma multipliers, so the sweep
// tops out well past the nominal operating point.
func DefaultExperimentConfig() ExperimentConfig {
	return ExperimentConfig{
		PayloadSize: 10_000,
		Steps:       20,
		MaxNoise:    4.0,
		Output:      "ber_results.csv",
		Noise:       DefaultNoise(),
	}
}

// experiment.toml key mapping.
type fileConfig struct {
	PayloadSize       int     `toml:"payload_size"`
	Steps             int     `toml:"steps"`
	MaxNoise          float64 `toml:"max_noise"`
	Output            string  `toml:"output"`
	SigmaIntensity    float64 `toml:"sigma_intensity"`
	SigmaPolarization float64 `toml:"sigma_polarization"`
	SigmaPhase        float64 `toml:"sigma_phase"`
	SigmaWavelength   float64 `toml:"sigma_wavelength"`
	CrosstalkWidth    int     `toml:"crosstalk_width"`
	CrosstalkHeight   int     `toml:"crosstalk_height"`
	CrosstalkFactor   float64 `toml:"crosstalk_factor"`
}

// LoadExperimentConfig reads a TOML experiment file over the defaults:
// only keys actually present in the file override.
func LoadExperimentConfig(path string) (ExperimentConfig, error) {
	cfg := DefaultExperimentConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return ExperimentConfig{}, fmt.Errorf("load experiment config: %w", err)
	}

	if meta.IsDefined("payload_size") {
		cfg.PayloadSize = raw.PayloadSize
	}
	if meta.IsDefined("steps") {
		cfg.Steps = raw.Steps
	}
	if meta.IsDefined("max_noise") {
		cfg.MaxNoise = raw.MaxNoise
	}
	if meta.IsDefined("output") {
		cfg.Output = raw.Output
	}
	if meta.IsDefined("sigma_intensity") {
		cfg.Noise.Intensity = raw.SigmaIntensity
	}
	if meta.IsDefined("sigma_polarization") {
		cfg.Noise.Polarization = raw.SigmaPolarization
	}
	if meta.IsDefined("sigma_phase") {
		cfg.Noise.Phase = raw.SigmaPhase
	}
	if meta.IsDefined("sigma_wavelength") {
		cfg.Noise.Wavelength = raw.SigmaWavelength
	}
	if meta.IsDefined("crosstalk_width") {
		cfg.Crosstalk.Width = raw.CrosstalkWidth
	}
	if meta.IsDefined("crosstalk_height") {
		cfg.Crosstalk.Height = raw.CrosstalkHeight
	}
	if meta.IsDefined("crosstalk_factor") {
		cfg.Crosstalk.Factor = raw.CrosstalkFactor
	}

	if cfg.PayloadSize <= 0 {
		return ExperimentConfig{}, fmt.Errorf("experiment config: payload_size must be positive, got %d", cfg.PayloadSize)
	}
	if cfg.Steps <= 0 {
		return ExperimentConfig{}, fmt.Errorf("experiment config: steps must be positive, got %d", cfg.Steps)
	}
	if cfg.MaxNoise < 0 || !isFinite(cfg.MaxNoise) {
		return ExperimentConfig{}, fmt.Errorf("experiment config: max_noise must be non-negative, got %v", cfg.MaxNoise)
	}
	return cfg, nil
}
