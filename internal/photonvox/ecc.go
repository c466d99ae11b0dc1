package photonvox

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/reedsolomon"
)

// Failure taxonomy of the erasure-coding layer. The codec and the noise
// and crosstalk models are total functions; only this layer can fail,
// and it always fails loudly rather than returning corrupted data.
var (
	// ErrUnrecoverable: more than ParityShards shards are unusable, or
	// parity does not match and no erasures were marked. Data loss;
	// retrying cannot help.
	ErrUnrecoverable = errors.New("photonvox: shard set unrecoverable")

	// ErrMalformedInput: buffer geometry inconsistent with the fixed
	// shard layout. Caller error, not data loss.
	ErrMalformedInput = errors.New("photonvox: malformed input")
)

// erasureCoder is the capability the layer needs from a concrete coding
// scheme: fill parity shards, rebuild nil shards, check parity.
// Swapping the scheme never touches the codec or the noise model.
type erasureCoder interface {
	encode(shards [][]byte) error
	reconstruct(shards [][]byte) error
	verify(shards [][]byte) (bool, error)
}

// rsCoder adapts klauspost/reedsolomon to the erasureCoder capability.
type rsCoder struct {
	enc reedsolomon.Encoder
}

func newRSCoder() (*rsCoder, error) {
	enc, err := reedsolomon.New(DataShards, ParityShards)
	if err != nil {
		return nil, fmt.Errorf("reed-solomon init: %w", err)
	}
	return &rsCoder{enc: enc}, nil
}

func (c *rsCoder) encode(shards [][]byte) error         { return c.enc.Encode(shards) }
func (c *rsCoder) reconstruct(shards [][]byte) error    { return c.enc.Reconstruct(shards) }
func (c *rsCoder) verify(shards [][]byte) (bool, error) { return c.enc.Verify(shards) }

// AddErrorCorrection wraps data for transport through the lossy
// pipeline: an 8-byte little-endian length header, DataShards equal
// data shards (the payload zero-padded to a multiple of DataShards),
// and ParityShards Reed-Solomon parity shards. Any ParityShards of the
// TotalShards shards can be lost and rebuilt on recovery.
func AddErrorCorrection(data []byte) ([]byte, error) {
	coder, err := newRSCoder()
	if err != nil {
		return nil, err
	}

	shardSize := (len(data) + DataShards - 1) / DataShards
	shards := make([][]byte, TotalShards)
	for i := range shards {
		shards[i] = make([]byte, shardSize)
	}
	for i := 0; i < DataShards; i++ {
		start := i * shardSize
		if start >= len(data) {
			break
		}
		copy(shards[i], data[start:]) // short copy leaves the zero padding
	}

	if shardSize > 0 {
		if err := coder.encode(shards); err != nil {
			return nil, fmt.Errorf("parity encode: %w", err)
		}
	}

	protected := make([]byte, eccHeaderSize, eccHeaderSize+TotalShards*shardSize)
	binary.LittleEndian.PutUint64(protected, uint64(len(data)))
	for _, shard := range shards {
		protected = append(protected, shard...)
	}
	return protected, nil
}

// RecoverErrorCorrection reverses AddErrorCorrection. Shard indices in
// erased are treated as missing and rebuilt from the remaining shards;
// up to ParityShards of the TotalShards may be erased. With no erasures
// the parity is verified instead — a mismatch means corruption at
// unknown positions, which an erasure code cannot locate, so the call
// fails rather than hand back damaged bytes.
func RecoverErrorCorrection(protected []byte, erased ...int) ([]byte, error) {
	if len(protected) < eccHeaderSize {
		return nil, fmt.Errorf("%w: protected buffer shorter than the %d-byte header", ErrMalformedInput, eccHeaderSize)
	}
	body := protected[eccHeaderSize:]
	if len(body)%TotalShards != 0 {
		return nil, fmt.Errorf("%w: body length %d is not a multiple of %d shards", ErrMalformedInput, len(body), TotalShards)
	}
	shardSize := len(body) / TotalShards

	origLen := binary.LittleEndian.Uint64(protected)
	if origLen > uint64(DataShards*shardSize) {
		return nil, fmt.Errorf("%w: header length %d exceeds data capacity %d", ErrMalformedInput, origLen, DataShards*shardSize)
	}
	if shardSize > 0 && uint64(DataShards*shardSize)-origLen >= DataShards {
		return nil, fmt.Errorf("%w: header length %d implies more than %d padding bytes", ErrMalformedInput, origLen, DataShards-1)
	}

	marked := make(map[int]bool, len(erased))
	for _, idx := range erased {
		if idx < 0 || idx >= TotalShards {
			return nil, fmt.Errorf("%w: erased shard index %d out of range [0,%d)", ErrMalformedInput, idx, TotalShards)
		}
		marked[idx] = true
	}
	if len(marked) > ParityShards {
		return nil, fmt.Errorf("%w: %d shards erased, at most %d can be rebuilt", ErrUnrecoverable, len(marked), ParityShards)
	}

	if shardSize == 0 {
		return []byte{}, nil
	}

	shards := make([][]byte, TotalShards)
	for i := range shards {
		if marked[i] {
			continue // left nil: missing, to be rebuilt
		}
		shards[i] = append([]byte(nil), body[i*shardSize:(i+1)*shardSize]...)
	}

	coder, err := newRSCoder()
	if err != nil {
		return nil, err
	}
	if len(marked) > 0 {
		if err := coder.reconstruct(shards); err != nil {
			return nil, fmt.Errorf("%w: reconstruct: %v", ErrUnrecoverable, err)
		}
	} else {
		ok, err := coder.verify(shards)
		if err != nil {
			return nil, fmt.Errorf("%w: verify: %v", ErrUnrecoverable, err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: parity mismatch with no marked erasures", ErrUnrecoverable)
		}
	}

	data := make([]byte, 0, DataShards*shardSize)
	for i := 0; i < DataShards; i++ {
		data = append(data, shards[i]...)
	}
	return data[:origLen], nil
}
