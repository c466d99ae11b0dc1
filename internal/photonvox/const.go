package photonvox

import "math"

// Real is the scalar type used for all voxel fields.
type Real = float64

const (
	// levelsPerField is the number of canonical levels each field can
	// take: 2 bits per field, 4 fields, 8 bits per voxel.
	levelsPerField = 4

	// Erasure-coding geometry: DataShards data shards plus ParityShards
	// parity shards per protected buffer. Up to ParityShards erased
	// shards can be rebuilt.
	DataShards   = 10
	ParityShards = 4
	TotalShards  = DataShards + ParityShards

	// eccHeaderSize is the little-endian uint64 original-length prefix
	// of a protected buffer, needed to strip padding on recovery.
	eccHeaderSize = 8

	// voxelRecordSize is the on-disk size of one voxel record: the four
	// fields as little-endian float32.
	voxelRecordSize = 16

	// polarizationPeriod and phasePeriod are the circular domains the
	// decoder folds over when quantizing the angular fields.
	polarizationPeriod = math.Pi
	phasePeriod        = 2 * math.Pi
)

// Canonical levels per field. A freshly encoded voxel has every field
// equal to one of these exactly; the decoder snaps noisy readings to
// the nearest level.
var (
	intensityLevels    = [levelsPerField]Real{0.25, 0.50, 0.75, 1.00}
	polarizationLevels = [levelsPerField]Real{0, math.Pi / 4, math.Pi / 2, 3 * math.Pi / 4}
	phaseLevels        = [levelsPerField]Real{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2}
	// Wavelengths in nm: green, red, blue, IR.
	wavelengthLevels = [levelsPerField]Real{532, 650, 450, 800}
)
