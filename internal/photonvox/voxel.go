package photonvox

// Voxel models the physical write state of one storage cell: the four
// laser-pulse parameters that together carry one byte.
//
// Right after encoding every field sits exactly on a canonical level;
// after noise or crosstalk the fields are arbitrary reals and only the
// decoder's nearest-level search gives them meaning again. A Voxel has
// no identity beyond its value.
type Voxel struct {
	Intensity    Real // amplitude, canonical domain [0.25, 1.0]
	Polarization Real // radians, canonical domain [0, π)
	Phase        Real // radians, canonical domain [0, 2π)
	Wavelength   Real // nanometers
}
