// Package icns encodes a single raster image into Apple's ICNS icon
// container: one file holding multiple resolution/format variants of the
// same icon, each tagged with an OSType-style code, with a table-of-contents
// chunk up front so a consumer can pick the best variant without scanning.
//
// The encoder derives every requested variant from one source image —
// resampled PackBits-packed channel planes for the legacy raw types, raw
// alpha planes for the mask types, embedded PNG bytes for the modern types —
// and assembles the chunks into a length-correct container. Image decoding
// and resampling are delegated to disintegration/imaging; PNG encoding to
// image/png. The core performs no I/O: bytes in, bytes out.
package icns

import (
	"image"

	"github.com/disintegration/imaging"

	icnserrors "github.com/provide-io/icns-go/pkg/icns/errors"
)

// Encoder configures and runs one container build.
//
//	data, err := icns.NewEncoder().
//		Data(img).
//		Formats(icns.Recommended()).
//		Build()
//
// There are no implicit defaults for the source image or the format set;
// Build fails until both are configured explicitly.
type Encoder struct {
	src      image.Image
	formats  []Type
	opts     buildOptions
	parallel bool
}

// NewEncoder returns an encoder with Lanczos resampling, upscaling enabled,
// and sequential builds.
func NewEncoder() *Encoder {
	return &Encoder{opts: defaultBuildOptions()}
}

// Data sets the source image. The encoder borrows it read-only and never
// mutates it.
func (e *Encoder) Data(img image.Image) *Encoder {
	e.src = img
	return e
}

// Formats sets the icon types to encode. The slice is copied; order is
// preserved and determines chunk order in the output.
func (e *Encoder) Formats(formats []Type) *Encoder {
	e.formats = make([]Type, len(formats))
	copy(e.formats, formats)
	return e
}

// Filter sets the resampling filter. Lanczos by default; NearestNeighbor
// is the fastest.
func (e *Encoder) Filter(filter imaging.ResampleFilter) *Encoder {
	e.opts.filter = filter
	return e
}

// AllowUpscale controls whether a source smaller than a requested size may
// be scaled up. When disabled, such a request fails with ErrResample.
func (e *Encoder) AllowUpscale(allow bool) *Encoder {
	e.opts.allowUpscale = allow
	return e
}

// Parallel fans representation builds out across goroutines. Output bytes
// are identical either way; chunks are always assembled in request order.
func (e *Encoder) Parallel(parallel bool) *Encoder {
	e.parallel = parallel
	return e
}

// Build validates the configuration and encodes the container. All
// assembler failures surface unchanged; no partial file is ever returned.
func (e *Encoder) Build() ([]byte, error) {
	if e.src == nil {
		return nil, icnserrors.ErrMissingSourceImage
	}
	if len(e.formats) == 0 {
		return nil, icnserrors.ErrMissingFormats
	}
	return assemble(e.src, e.formats, e.opts, e.parallel)
}
