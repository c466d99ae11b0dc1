package photonvox

import (
	"math"
	"math/rand"
	"time"
)

// EncodeByte maps one byte onto a voxel, two bits per field:
// bits 0-1 intensity, 2-3 polarization, 4-5 phase, 6-7 wavelength.
func EncodeByte(b byte) Voxel {
	return Voxel{
		Intensity:    intensityLevels[b&0b11],
		Polarization: polarizationLevels[(b>>2)&0b11],
		Phase:        phaseLevels[(b>>4)&0b11],
		Wavelength:   wavelengthLevels[(b>>6)&0b11],
	}
}

// EncodeData encodes a byte buffer one voxel per byte, order preserving
// and length preserving. Empty input yields an empty slice.
func EncodeData(data []byte) []Voxel {
	voxels := make([]Voxel, len(data))
	for i, b := range data {
		voxels[i] = EncodeByte(b)
	}
	return voxels
}

// nearestLevel returns the index of the level closest to x by plain
// absolute distance. Ties break toward the lower index: the strict <
// keeps the first minimum of a left-to-right scan.
func nearestLevel(x Real, levels [levelsPerField]Real) int {
	best := 0
	bestDist := math.Inf(1)
	for i, level := range levels {
		if d := math.Abs(x - level); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// nearestAngularLevel is nearestLevel with the distance folded over a
// circular domain, so a noisy reading just past the top level snaps
// back to level 0 instead of sticking to the highest one.
func nearestAngularLevel(x Real, levels [levelsPerField]Real, period Real) int {
	best := 0
	bestDist := math.Inf(1)
	for i, level := range levels {
		d := math.Mod(math.Abs(x-level), period)
		if d > period/2 {
			d = period - d
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// DecodeVoxel quantizes each field to its nearest canonical level and
// reassembles the byte. Polarization folds over π and phase over 2π;
// intensity and wavelength use plain distance. Total: every voxel,
// however noisy, decodes to some byte.
func DecodeVoxel(v Voxel) byte {
	iBits := nearestLevel(v.Intensity, intensityLevels)
	pBits := nearestAngularLevel(v.Polarization, polarizationLevels, polarizationPeriod)
	phBits := nearestAngularLevel(v.Phase, phaseLevels, phasePeriod)
	wBits := nearestLevel(v.Wavelength, wavelengthLevels)
	return byte(wBits<<6 | phBits<<4 | pBits<<2 | iBits)
}

// DecodeData quantizes a voxel sequence back into bytes. When
// simulateNoise is set, each voxel is perturbed with the default
// readout noise on a copy first; the input is never mutated. The noise
// source is time-seeded — use DecodeDataNoise to pin the sequence.
func DecodeData(voxels []Voxel, simulateNoise bool) []byte {
	if !simulateNoise {
		return DecodeDataNoise(voxels, NoiseParams{}, nil)
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return DecodeDataNoise(voxels, DefaultNoise(), rng)
}

// DecodeDataNoise is the explicit-source variant of DecodeData: noise
// parameters and the generator are injected so runs reproduce exactly.
// Zero params or a nil rng decode without noise.
func DecodeDataNoise(voxels []Voxel, params NoiseParams, rng *rand.Rand) []byte {
	data := make([]byte, len(voxels))
	noisy := rng != nil && !params.IsZero()
	for i, v := range voxels {
		if noisy {
			v = params.Perturb(v, rng)
		}
		data[i] = DecodeVoxel(v)
	}
	return data
}
