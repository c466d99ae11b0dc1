package photonvox

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// Voxel files store one 16-byte record per voxel: the four fields as
// little-endian float32 in order intensity, polarization, phase,
// wavelength. A raw file is a bare record sequence; the compressed
// container prefixes a magic and a record count and zstd-compresses the
// record body. Readers detect the container by its magic.
const voxMagic = "PVOX"

// Shared zstd codec state, reused across calls. Both are safe for
// concurrent use.
var (
	voxZstdEncoder *zstd.Encoder
	voxZstdDecoder *zstd.Decoder
)

func init() {
	var err error
	voxZstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("photonvox: zstd encoder init: " + err.Error())
	}
	voxZstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("photonvox: zstd decoder init: " + err.Error())
	}
}

func marshalVoxels(voxels []Voxel) []byte {
	buf := make([]byte, len(voxels)*voxelRecordSize)
	for i, v := range voxels {
		off := i * voxelRecordSize
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(float32(v.Intensity)))
		binary.LittleEndian.PutUint32(buf[off+4:], math.Float32bits(float32(v.Polarization)))
		binary.LittleEndian.PutUint32(buf[off+8:], math.Float32bits(float32(v.Phase)))
		binary.LittleEndian.PutUint32(buf[off+12:], math.Float32bits(float32(v.Wavelength)))
	}
	return buf
}

func unmarshalVoxels(body []byte) ([]Voxel, error) {
	if len(body)%voxelRecordSize != 0 {
		return nil, fmt.Errorf("%w: voxel body of %d bytes is not a multiple of the %d-byte record",
			ErrMalformedInput, len(body), voxelRecordSize)
	}
	voxels := make([]Voxel, len(body)/voxelRecordSize)
	for i := range voxels {
		off := i * voxelRecordSize
		voxels[i] = Voxel{
			Intensity:    Real(math.Float32frombits(binary.LittleEndian.Uint32(body[off:]))),
			Polarization: Real(math.Float32frombits(binary.LittleEndian.Uint32(body[off+4:]))),
			Phase:        Real(math.Float32frombits(binary.LittleEndian.Uint32(body[off+8:]))),
			Wavelength:   Real(math.Float32frombits(binary.LittleEndian.Uint32(body[off+12:]))),
		}
	}
	return voxels, nil
}

// WriteVoxelFile persists voxels to path, zstd-compressed inside a PVOX
// container when compress is set, as bare records otherwise. Parent
// directories are created as needed.
func WriteVoxelFile(path string, voxels []Voxel, compress bool) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	body := marshalVoxels(voxels)
	if compress {
		if _, err := w.WriteString(voxMagic); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(len(voxels))); err != nil {
			return err
		}
		if _, err := w.Write(voxZstdEncoder.EncodeAll(body, nil)); err != nil {
			return err
		}
	} else {
		if _, err := w.Write(body); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_ = f.Sync() // optional

	return nil
}

// ReadVoxelFile loads a voxel file written by WriteVoxelFile in either
// form. Container corruption, a record-count mismatch, or a raw length
// that is not a multiple of the record size is ErrMalformedInput.
func ReadVoxelFile(path string) ([]Voxel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(raw) >= len(voxMagic)+4 && bytes.HasPrefix(raw, []byte(voxMagic)) {
		count := int(binary.LittleEndian.Uint32(raw[len(voxMagic):]))
		body, err := voxZstdDecoder.DecodeAll(raw[len(voxMagic)+4:], make([]byte, 0, count*voxelRecordSize))
		if err != nil {
			return nil, fmt.Errorf("%w: zstd decompress: %v", ErrMalformedInput, err)
		}
		if len(body) != count*voxelRecordSize {
			return nil, fmt.Errorf("%w: container body is %d bytes, header promises %d records",
				ErrMalformedInput, len(body), count)
		}
		return unmarshalVoxels(body)
	}
	return unmarshalVoxels(raw)
}
