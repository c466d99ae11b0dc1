package photonvox

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunExperimentWritesCSV(t *testing.T) {
	cfg := DefaultExperimentConfig()
	cfg.PayloadSize = 64
	cfg.Steps = 4
	cfg.MaxNoise = 0 // every point noiseless, so every BER is exactly 0
	cfg.Output = filepath.Join(t.TempDir(), "ber.csv")

	results, err := RunExperiment(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != cfg.Steps+1 {
		t.Fatalf("%d results, want %d", len(results), cfg.Steps+1)
	}

	f, err := os.Open(cfg.Output)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != cfg.Steps+2 {
		t.Fatalf("%d CSV rows, want header plus %d points", len(records), cfg.Steps+1)
	}
	if got := strings.Join(records[0], ","); got != "NoiseLevel,BER,ErrorBits,TotalBits" {
		t.Fatalf("unexpected header: %s", got)
	}
	for i, rec := range records[1:] {
		if rec[1] != "0.000000" {
			t.Fatalf("row %d: BER %s, want 0.000000 for a zero-noise sweep", i, rec[1])
		}
	}
}

func TestRunExperimentBadOutputPath(t *testing.T) {
	cfg := DefaultExperimentConfig()
	cfg.PayloadSize = 8
	cfg.Steps = 1
	cfg.Output = filepath.Join(t.TempDir(), "missing-dir", "ber.csv")
	if _, err := RunExperiment(cfg); err == nil {
		t.Fatal("expected an error for an unwritable output path")
	}
}

func TestRunDemo(t *testing.T) {
	var buf bytes.Buffer
	if err := RunDemo(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Hello, 5D World!", "Encoded", "Polarization-blind read"} {
		if !strings.Contains(out, want) {
			t.Fatalf("demo output missing %q:\n%s", want, out)
		}
	}
}
