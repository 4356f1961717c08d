// Package packbits implements the PackBits run-length scheme used by the
// legacy raw icon encodings.
//
// The stream alternates control-tagged groups. A control byte c in [0,127]
// announces c+1 literal bytes copied verbatim; c in [129,255] announces a
// single byte repeated 257-c times (2..128). 0x80 is a no-op and is skipped
// on decode. Runs longer than 128 bytes split into multiple groups.
package packbits

import (
	"bytes"
	"fmt"

	icnserrors "github.com/provide-io/icns-go/pkg/icns/errors"
)

const (
	// maxGroup bounds both literal and repeat group lengths.
	maxGroup = 128

	// minRepeat is the shortest run worth a repeat group. Two identical
	// bytes cost the same either way; folding them into the surrounding
	// literal keeps group count down.
	minRepeat = 3

	noOp = 0x80
)

// Compress run-length encodes raw. The output always round-trips through
// Decompress, including for empty input (empty output).
func Compress(raw []byte) ([]byte, error) {
	var out bytes.Buffer

	i := 0
	for i < len(raw) {
		run := runLength(raw, i, maxGroup)

		if run >= minRepeat {
			if run < 2 || run > maxGroup {
				return nil, fmt.Errorf("%w: run of %d", icnserrors.ErrPackBitsOverflow, run)
			}
			out.WriteByte(byte(257 - run))
			out.WriteByte(raw[i])
			i += run
			continue
		}

		// Literal group: extend until a compressible run begins or the
		// group fills up.
		start := i
		i += run
		for i < len(raw) && i-start < maxGroup {
			if runLength(raw, i, minRepeat) >= minRepeat {
				break
			}
			i++
		}

		n := i - start
		if n < 1 || n > maxGroup {
			return nil, fmt.Errorf("%w: literal of %d", icnserrors.ErrPackBitsOverflow, n)
		}
		out.WriteByte(byte(n - 1))
		out.Write(raw[start:i])
	}

	return out.Bytes(), nil
}

// Decompress expands a PackBits stream. A control byte that implies reading
// past the end of input fails with ErrMalformedPackBits.
func Decompress(data []byte) ([]byte, error) {
	var out bytes.Buffer

	i := 0
	for i < len(data) {
		ctrl := data[i]
		i++

		switch {
		case ctrl == noOp:
			// skip

		case ctrl > noOp:
			if i >= len(data) {
				return nil, fmt.Errorf("%w: repeat group truncated at offset %d",
					icnserrors.ErrMalformedPackBits, i)
			}
			n := 257 - int(ctrl)
			out.Write(bytes.Repeat(data[i:i+1], n))
			i++

		default:
			n := int(ctrl) + 1
			if i+n > len(data) {
				return nil, fmt.Errorf("%w: literal group of %d truncated at offset %d",
					icnserrors.ErrMalformedPackBits, n, i)
			}
			out.Write(data[i : i+n])
			i += n
		}
	}

	return out.Bytes(), nil
}

// runLength counts identical bytes starting at i, capped at max.
func runLength(raw []byte, i, max int) int {
	run := 1
	for i+run < len(raw) && run < max && raw[i+run] == raw[i] {
		run++
	}
	return run
}
