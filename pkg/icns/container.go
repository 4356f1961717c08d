package icns

import (
	"encoding/binary"
	"fmt"
	"image"
	"math"
	"sync"

	icnserrors "github.com/provide-io/icns-go/pkg/icns/errors"
	"github.com/provide-io/icns-go/pkg/logging"
)

// Container magic, "icns" as bytes.
var magicBytes = []byte{0x69, 0x63, 0x6e, 0x73}

// fileHeaderSize is the magic plus the big-endian total length field.
// The length counts the header itself.
const fileHeaderSize = 8

var containerLogger = logging.NewLogger("icns.container", logging.GetLogLevel(), nil)

// validateRequest checks that every requested type is registered and appears
// at most once. The request must not be empty: the format has no way to
// express an empty icon family.
func validateRequest(types []Type) error {
	if len(types) == 0 {
		return icnserrors.ErrMissingFormats
	}

	seen := make(map[Type]bool, len(types))
	for _, code := range types {
		if _, err := SpecFor(code); err != nil {
			return err
		}
		if seen[code] {
			return fmt.Errorf("%w: %q", icnserrors.ErrDuplicateTypeCode, string(code))
		}
		seen[code] = true
	}
	return nil
}

// assemble builds every requested representation, wraps each in a chunk,
// and emits the container: header, TOC chunk, then the icon chunks in
// request order. Any single build failure aborts the whole operation —
// the format cannot signal a missing variant to a consumer, so a partial
// file would be silently broken.
func assemble(src image.Image, types []Type, opts buildOptions, parallel bool) ([]byte, error) {
	if err := validateRequest(types); err != nil {
		return nil, err
	}

	containerLogger.Debug("🧱 Assembling container",
		"formats", len(types),
		"parallel", parallel,
	)

	payloads, err := buildAll(src, types, opts, parallel)
	if err != nil {
		return nil, err
	}

	chunks := make([]Chunk, len(types))
	for i, code := range types {
		chunk, err := NewChunk(code, payloads[i])
		if err != nil {
			return nil, err
		}
		chunks[i] = chunk
		containerLogger.Trace("📦 Encoded chunk",
			"type", string(code),
			"length", chunk.Len(),
		)
	}

	toc, err := tocChunk(chunks)
	if err != nil {
		return nil, err
	}

	total := uint64(fileHeaderSize) + uint64(toc.Len())
	for _, c := range chunks {
		total += uint64(c.Len())
	}
	if total > math.MaxUint32 {
		return nil, fmt.Errorf("%w: container of %d bytes", icnserrors.ErrPayloadTooLarge, total)
	}

	// Header with a placeholder length, TOC first, then icon chunks.
	buf := make([]byte, 0, total)
	buf = append(buf, magicBytes...)
	buf = append(buf, 0, 0, 0, 0)
	buf = append(buf, toc.Encode()...)
	for _, c := range chunks {
		buf = append(buf, c.Encode()...)
	}

	// Patch the total length, header included.
	binary.BigEndian.PutUint32(buf[4:8], uint32(len(buf)))

	containerLogger.Debug("✅ Container assembled",
		"chunks", len(chunks),
		"bytes", len(buf),
	)

	return buf, nil
}

// buildAll produces the payload for every requested type. With parallel set
// it fans the builds out across goroutines and collects results by index,
// so the emitted byte order never depends on scheduling. Errors surface in
// request order.
func buildAll(src image.Image, types []Type, opts buildOptions, parallel bool) ([][]byte, error) {
	payloads := make([][]byte, len(types))
	errs := make([]error, len(types))

	if parallel {
		var wg sync.WaitGroup
		for i, code := range types {
			wg.Add(1)
			go func(i int, code Type) {
				defer wg.Done()
				payloads[i], errs[i] = buildRepresentation(src, code, opts)
			}(i, code)
		}
		wg.Wait()
	} else {
		for i, code := range types {
			payloads[i], errs[i] = buildRepresentation(src, code, opts)
		}
	}

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("building %q: %w", string(types[i]), err)
		}
	}
	return payloads, nil
}

// tocChunk mirrors each icon chunk as a (type, chunk length) pair, in
// emission order.
func tocChunk(chunks []Chunk) (Chunk, error) {
	payload := make([]byte, 0, chunkHeaderSize*len(chunks))
	for _, c := range chunks {
		tag := c.Type.OSType()
		payload = append(payload, tag[:]...)
		payload = binary.BigEndian.AppendUint32(payload, c.Len())
	}
	return NewChunk(TypeTOC, payload)
}
