package icns

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"

	icnserrors "github.com/provide-io/icns-go/pkg/icns/errors"
	"github.com/provide-io/icns-go/pkg/icns/packbits"
)

// argbPrefix opens every ARGB payload (ic04/ic05).
var argbPrefix = []byte{0x41, 0x52, 0x47, 0x42} // "ARGB"

// it32Prefix is the 4 reserved zero bytes preceding the it32 channel planes.
var it32Prefix = []byte{0x00, 0x00, 0x00, 0x00}

// buildOptions carries the resampling knobs from the facade into the
// representation builders.
type buildOptions struct {
	filter       imaging.ResampleFilter
	allowUpscale bool
}

func defaultBuildOptions() buildOptions {
	return buildOptions{
		filter:       imaging.Lanczos,
		allowUpscale: true,
	}
}

// buildRepresentation produces the payload bytes for one icon type from the
// source image. It is stateless: concurrent calls against the same source
// image are safe.
func buildRepresentation(src image.Image, code Type, opts buildOptions) ([]byte, error) {
	spec, err := SpecFor(code)
	if err != nil {
		return nil, err
	}

	switch spec.Kind {
	case KindPNG:
		return pngPayload(src, spec.Size, opts)
	case KindRGB:
		return rgbPayload(src, code, spec.Size, opts)
	case KindARGB:
		return argbPayload(src, spec.Size, opts)
	case KindMask:
		return maskPayload(src, spec.Size, opts)
	case KindIndexed:
		return nil, fmt.Errorf("%w: %q wants %d-bit indexed color",
			icnserrors.ErrUnsupportedDepth, string(code), spec.Depth)
	default:
		return nil, fmt.Errorf("%w: %q", icnserrors.ErrUnknownTypeCode, string(code))
	}
}

// resample center-crops the source to square and resizes it to size x size.
func resample(src image.Image, size int, opts buildOptions) (*image.NRGBA, error) {
	bounds := src.Bounds()
	if !opts.allowUpscale && (bounds.Dx() < size || bounds.Dy() < size) {
		return nil, fmt.Errorf("%w: %dx%d source, %dx%d target",
			icnserrors.ErrResample, bounds.Dx(), bounds.Dy(), size, size)
	}
	return imaging.Fill(src, size, size, imaging.Center, opts.filter), nil
}

// pngPayload resamples and encodes the image as verbatim PNG bytes.
func pngPayload(src image.Image, size int, opts buildOptions) ([]byte, error) {
	resized, err := resample(src, size, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, resized); err != nil {
		return nil, fmt.Errorf("%w: %v", icnserrors.ErrEncode, err)
	}
	return buf.Bytes(), nil
}

// rgbPayload serializes channel-planar R,G,B, each plane independently
// PackBits-compressed. it32 payloads carry 4 reserved zero bytes first.
func rgbPayload(src image.Image, code Type, size int, opts buildOptions) ([]byte, error) {
	resized, err := resample(src, size, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if code == TypeIT32 {
		buf.Write(it32Prefix)
	}
	for _, channel := range []int{0, 1, 2} { // R, G, B
		compressed, err := packbits.Compress(channelPlane(resized, channel))
		if err != nil {
			return nil, err
		}
		buf.Write(compressed)
	}
	return buf.Bytes(), nil
}

// argbPayload serializes the "ARGB" prefix followed by PackBits-compressed
// A,R,G,B planes.
func argbPayload(src image.Image, size int, opts buildOptions) ([]byte, error) {
	resized, err := resample(src, size, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(argbPrefix)
	for _, channel := range []int{3, 0, 1, 2} { // A, R, G, B
		compressed, err := packbits.Compress(channelPlane(resized, channel))
		if err != nil {
			return nil, err
		}
		buf.Write(compressed)
	}
	return buf.Bytes(), nil
}

// maskPayload extracts the alpha channel as one uncompressed 8-bit plane.
func maskPayload(src image.Image, size int, opts buildOptions) ([]byte, error) {
	resized, err := resample(src, size, opts)
	if err != nil {
		return nil, err
	}
	return channelPlane(resized, 3), nil
}

// channelPlane extracts one NRGBA channel (0=R 1=G 2=B 3=A) in row-major
// order.
func channelPlane(img *image.NRGBA, channel int) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	plane := make([]byte, 0, w*h)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w; x++ {
			plane = append(plane, row[x*4+channel])
		}
	}
	return plane
}
