package main

import "testing"

func TestParseCrosstalk(t *testing.T) {
	w, h, factor, err := parseCrosstalk("16x16:0.02")
	if err != nil {
		t.Fatal(err)
	}
	if w != 16 || h != 16 || factor != 0.02 {
		t.Fatalf("got %dx%d:%v", w, h, factor)
	}

	bad := []string{
		"",
		"16x16",      // no factor
		"16:0.02",    // no height
		"0x16:0.02",  // zero width
		"16x-1:0.02", // negative height
		"axb:0.02",   // non-numeric grid
		"16x16:-0.5", // negative factor
		"16x16:zzz",  // non-numeric factor
	}
	for _, spec := range bad {
		if _, _, _, err := parseCrosstalk(spec); err == nil {
			t.Fatalf("spec %q: expected an error", spec)
		}
	}
}
