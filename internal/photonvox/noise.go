package photonvox

import "math/rand"

// NoiseParams holds the per-field Gaussian standard deviations used to
// model imperfect readout.
type NoiseParams struct {
	Intensity    Real
	Polarization Real // radians
	Phase        Real // radians
	Wavelength   Real // nanometers
}

// DefaultNoise returns the nominal readout sigmas. They are
// illustrative constants, not measured device characteristics.
func DefaultNoise() NoiseParams {
	return NoiseParams{
		Intensity:    0.05,
		Polarization: 0.08,
		Phase:        0.10,
		Wavelength:   10,
	}
}

// Scaled returns a copy with every sigma multiplied by a. The BER sweep
// uses this to move along its amplitude axis.
func (p NoiseParams) Scaled(a Real) NoiseParams {
	return NoiseParams{
		Intensity:    p.Intensity * a,
		Polarization: p.Polarization * a,
		Phase:        p.Phase * a,
		Wavelength:   p.Wavelength * a,
	}
}

// IsZero reports whether every sigma is zero.
func (p NoiseParams) IsZero() bool { return p == NoiseParams{} }

// Perturb returns a copy of v with an independent zero-mean Gaussian
// sample added to each field. Values are neither clamped nor wrapped:
// the decoder's nearest-level search absorbs out-of-range readings.
func (p NoiseParams) Perturb(v Voxel, rng *rand.Rand) Voxel {
	return Voxel{
		Intensity:    v.Intensity + rng.NormFloat64()*p.Intensity,
		Polarization: v.Polarization + rng.NormFloat64()*p.Polarization,
		Phase:        v.Phase + rng.NormFloat64()*p.Phase,
		Wavelength:   v.Wavelength + rng.NormFloat64()*p.Wavelength,
	}
}

// ApplyNoise perturbs every voxel into a fresh slice, leaving the input
// untouched.
func ApplyNoise(voxels []Voxel, p NoiseParams, rng *rand.Rand) []Voxel {
	out := make([]Voxel, len(voxels))
	for i, v := range voxels {
		out[i] = p.Perturb(v, rng)
	}
	return out
}
