package photonvox

import (
	"math/bits"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"
)

// SimulationResult is one point of a bit-error-rate sweep.
type SimulationResult struct {
	NoiseLevel Real    // sigma multiplier applied to the default noise
	TotalBits  int
	ErrorBits  int
	BER        float64 // ErrorBits / TotalBits
}

// RunBERSimulation sweeps the noise amplitude over steps+1 points
// linearly spaced in [0, maxNoise] (first exactly 0, last exactly
// maxNoise) and measures the bit error rate of one encode → noise →
// decode cycle per point. The amplitude scales the default per-field
// sigmas. A single random payload of payloadSize bytes is encoded once
// and reused across the whole sweep.
//
// In expectation the curve is non-decreasing in amplitude, but not
// pointwise: each point is a stochastic measurement.
func RunBERSimulation(payloadSize, steps int, maxNoise Real) []SimulationResult {
	return runBERSimulation(payloadSize, steps, maxNoise, DefaultNoise(), CrosstalkConfig{}, time.Now().UnixNano())
}

// runBERSimulation is the seeded core of RunBERSimulation. The sigmas
// scaled along the sweep come from params; when ct declares a grid, the
// crosstalk model runs once on the encoded voxels before the sweep (it
// is deterministic, so it belongs to the write, not to a step).
//
// Sweep steps run concurrently: every worker owns a seeded generator
// and each step writes only its own result slot, so the output is
// ordered by amplitude no matter how the workers are scheduled.
func runBERSimulation(payloadSize, steps int, maxNoise Real, params NoiseParams, ct CrosstalkConfig, seed int64) []SimulationResult {
	if payloadSize < 0 {
		payloadSize = 0
	}
	if steps < 1 {
		steps = 1
	}

	payload := make([]byte, payloadSize)
	rand.New(rand.NewSource(seed)).Read(payload)
	voxels := EncodeData(payload) // ideal write, noise applied per step
	if ct.Width > 0 && ct.Height > 0 {
		voxels = SimulateCrosstalk(voxels, ct.Width, ct.Height, ct.Factor)
	}
	totalBits := payloadSize * 8

	results := make([]SimulationResult, steps+1)
	workers := runtime.NumCPU()
	if workers > steps+1 {
		workers = steps + 1
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(wid int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed ^ int64(uint64(wid+1)*0x9e3779b97f4a7c15)))
			for i := wid; i <= steps; i += workers {
				amplitude := maxNoise * Real(i) / Real(steps)
				var decoded []byte
				if amplitude > 0 {
					noisy := ApplyNoise(voxels, params.Scaled(amplitude), rng)
					decoded = DecodeData(noisy, false)
				} else {
					decoded = DecodeData(voxels, false)
				}
				errBits := CountBitErrors(payload, decoded)
				results[i] = SimulationResult{
					NoiseLevel: amplitude,
					TotalBits:  totalBits,
					ErrorBits:  errBits,
					BER:        float64(errBits) / float64(imax(totalBits, 1)),
				}
			}
		}(w)
	}
	wg.Wait()
	return results
}

// CountBitErrors returns the number of differing bits between two byte
// buffers. A length mismatch counts 8 error bits per missing byte.
func CountBitErrors(original, decoded []byte) int {
	n := len(original)
	if len(decoded) < n {
		n = len(decoded)
	}
	errs := 0
	for i := 0; i < n; i++ {
		errs += bits.OnesCount8(original[i] ^ decoded[i])
	}
	if d := len(original) - len(decoded); d != 0 {
		if d < 0 {
			d = -d
		}
		errs += d * 8
	}
	return errs
}

// BERSummary aggregates a sweep: mean and peak BER plus the slope of a
// least-squares BER-versus-amplitude fit. A positive slope confirms the
// curve trends upward with noise.
type BERSummary struct {
	MeanBER float64
	MaxBER  float64
	Slope   float64
}

// SummarizeBER computes summary statistics over sweep results.
func SummarizeBER(results []SimulationResult) BERSummary {
	if len(results) == 0 {
		return BERSummary{}
	}
	amps := make([]float64, len(results))
	bers := make([]float64, len(results))
	var s BERSummary
	for i, r := range results {
		amps[i] = float64(r.NoiseLevel)
		bers[i] = r.BER
		if r.BER > s.MaxBER {
			s.MaxBER = r.BER
		}
	}
	s.MeanBER = stat.Mean(bers, nil)
	if len(results) > 1 {
		_, s.Slope = stat.LinearRegression(amps, bers, nil, false)
	}
	return s
}
