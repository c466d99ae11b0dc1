package photonvox

import "bytes"

// ReadIgnoringPolarization simulates a reader blind to the polarization
// dimension: every voxel is read as if its polarization were level 0.
// The polarization 2-bit field of every byte therefore decodes to 00,
// corrupting exactly those two bit positions wherever the true field
// was nonzero. The read is noiseless and deterministic; the input
// voxels are not modified.
func ReadIgnoringPolarization(voxels []Voxel) []byte {
	blind := make([]Voxel, len(voxels))
	for i, v := range voxels {
		v.Polarization = 0
		blind[i] = v
	}
	return DecodeData(blind, false)
}

// VerifyObfuscation reports whether a polarization-blind read fails to
// reproduce the original payload. False means the payload leaked: every
// byte happened to carry polarization bits 00.
func VerifyObfuscation(original []byte, voxels []Voxel) bool {
	return !bytes.Equal(original, ReadIgnoringPolarization(voxels))
}
