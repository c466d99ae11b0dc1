package photonvox

import "testing"

func TestBlindReadZeroesPolarizationBits(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	stolen := ReadIgnoringPolarization(EncodeData(data))
	if len(stolen) != len(data) {
		t.Fatalf("stolen length %d, want %d", len(stolen), len(data))
	}
	for i, b := range data {
		want := b &^ 0b0000_1100
		if stolen[i] != want {
			t.Fatalf("byte %02x: blind read %08b, want %08b", b, stolen[i], want)
		}
	}
}

func TestBlindReadDoesNotMutateVoxels(t *testing.T) {
	voxels := EncodeData([]byte("secret"))
	snapshot := make([]Voxel, len(voxels))
	copy(snapshot, voxels)
	_ = ReadIgnoringPolarization(voxels)
	for i := range voxels {
		if voxels[i] != snapshot[i] {
			t.Fatalf("voxel %d mutated by blind read", i)
		}
	}
}

func TestVerifyObfuscation(t *testing.T) {
	// "secret" carries nonzero polarization bits, so the blind read
	// cannot reproduce it.
	hidden := []byte("secret")
	if !VerifyObfuscation(hidden, EncodeData(hidden)) {
		t.Fatal("payload with nonzero polarization bits should be obfuscated")
	}

	// Every byte with polarization bits 00 survives a blind read intact.
	leaky := []byte{0x00, 0x03, 0x30, 0xF3}
	if VerifyObfuscation(leaky, EncodeData(leaky)) {
		t.Fatal("payload with all-zero polarization bits should leak")
	}
}
