package photonvox

import (
	"math/rand"
	"testing"
)

func TestPerturbReproducible(t *testing.T) {
	v := EncodeByte(0xA7)
	p := DefaultNoise()
	a := p.Perturb(v, rand.New(rand.NewSource(1)))
	b := p.Perturb(v, rand.New(rand.NewSource(1)))
	if a != b {
		t.Fatalf("same seed gave different voxels: %+v vs %+v", a, b)
	}
}

func TestZeroSigmaIsIdentity(t *testing.T) {
	v := EncodeByte(0x3C)
	rng := rand.New(rand.NewSource(1))
	if got := (NoiseParams{}).Perturb(v, rng); got != v {
		t.Fatalf("zero sigmas changed the voxel: %+v", got)
	}
}

func TestApplyNoiseLeavesInputAlone(t *testing.T) {
	voxels := EncodeData([]byte{1, 2, 3, 4})
	snapshot := make([]Voxel, len(voxels))
	copy(snapshot, voxels)

	out := ApplyNoise(voxels, DefaultNoise(), rand.New(rand.NewSource(3)))
	if len(out) != len(voxels) {
		t.Fatalf("length changed: %d -> %d", len(voxels), len(out))
	}
	for i := range voxels {
		if voxels[i] != snapshot[i] {
			t.Fatalf("input voxel %d mutated", i)
		}
	}
}

func TestScaled(t *testing.T) {
	p := DefaultNoise().Scaled(2)
	if p.Intensity != 0.10 || p.Wavelength != 20 {
		t.Fatalf("unexpected scaled sigmas: %+v", p)
	}
}

// Empirical noise tolerance: at a tenth of the nominal sigmas the
// decision margins are tens of standard deviations wide, so the BER
// over a sizable payload must stay (essentially at zero) under 0.001.
func TestNoiseToleranceLowAmplitude(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	payload := make([]byte, 2000)
	rng.Read(payload)

	voxels := EncodeData(payload)
	noisy := ApplyNoise(voxels, DefaultNoise().Scaled(0.1), rng)
	decoded := DecodeData(noisy, false)

	ber := float64(CountBitErrors(payload, decoded)) / float64(len(payload)*8)
	if ber >= 0.001 {
		t.Fatalf("BER %.6f at low amplitude, want < 0.001", ber)
	}
}

// At four times the nominal sigmas the intensity sigma (0.2) dwarfs the
// 0.125 decision half-gap, so errors are guaranteed in expectation.
func TestNoiseBreaksDownAtHighAmplitude(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	payload := make([]byte, 2000)
	rng.Read(payload)

	voxels := EncodeData(payload)
	noisy := ApplyNoise(voxels, DefaultNoise().Scaled(4.0), rng)
	decoded := DecodeData(noisy, false)

	ber := float64(CountBitErrors(payload, decoded)) / float64(len(payload)*8)
	if ber <= 0.05 {
		t.Fatalf("BER %.6f at high amplitude, want > 0.05", ber)
	}
}
