package photonvox

// SimulateCrosstalk models write-beam overlap between physically close
// voxels. The linear sequence is read as a width × height × depth grid,
// index i at (i mod W, (i/W) mod H, i/(W·H)), with depth inferred from
// the length (the last layer may be partial). Each output voxel is the
// weighted average of itself (weight 1) and its in-bounds 6-neighbors
// (weight factor each), so no field can leave the range spanned by its
// neighborhood. Out-of-grid neighbors are excluded, never zero-padded.
//
// Neighbor reads come from the input snapshot and results go to a fresh
// slice: a voxel never observes an already-perturbed neighbor. A zero
// width or height, or a non-positive factor, returns a plain copy.
func SimulateCrosstalk(voxels []Voxel, width, height int, factor Real) []Voxel {
	out := make([]Voxel, len(voxels))
	copy(out, voxels)
	if width <= 0 || height <= 0 || factor <= 0 || !isFinite(factor) {
		return out
	}

	layer := width * height
	depth := (len(voxels) + layer - 1) / layer

	at := func(x, y, z int) (int, bool) {
		if x < 0 || x >= width || y < 0 || y >= height || z < 0 || z >= depth {
			return 0, false
		}
		idx := z*layer + y*width + x
		if idx >= len(voxels) {
			return 0, false // hole in a partial last layer
		}
		return idx, true
	}

	for i := range voxels {
		x := i % width
		y := (i / width) % height
		z := i / layer

		sum := voxels[i]
		weight := Real(1)
		neighbors := [6][3]int{
			{x - 1, y, z}, {x + 1, y, z},
			{x, y - 1, z}, {x, y + 1, z},
			{x, y, z - 1}, {x, y, z + 1},
		}
		for _, n := range neighbors {
			j, ok := at(n[0], n[1], n[2])
			if !ok {
				continue
			}
			nv := voxels[j]
			sum.Intensity += nv.Intensity * factor
			sum.Polarization += nv.Polarization * factor
			sum.Phase += nv.Phase * factor
			sum.Wavelength += nv.Wavelength * factor
			weight += factor
		}
		out[i] = Voxel{
			Intensity:    sum.Intensity / weight,
			Polarization: sum.Polarization / weight,
			Phase:        sum.Phase / weight,
			Wavelength:   sum.Wavelength / weight,
		}
	}
	return out
}
