package icns

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"

	icnserrors "github.com/provide-io/icns-go/pkg/icns/errors"
	"github.com/provide-io/icns-go/pkg/icns/packbits"
)

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// nearestOpts keeps resampled pixel values exact for byte-level assertions.
func nearestOpts() buildOptions {
	return buildOptions{filter: imaging.NearestNeighbor, allowUpscale: true}
}

func flatImage(w, h int, c color.NRGBA) *image.NRGBA {
	return imaging.New(w, h, c)
}

func mustCompress(t *testing.T, plane []byte) []byte {
	t.Helper()
	out, err := packbits.Compress(plane)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	return out
}

func TestMaskPayload(t *testing.T) {
	src := flatImage(64, 64, color.NRGBA{R: 10, G: 20, B: 30, A: 200})

	payload, err := buildRepresentation(src, TypeS8MK, nearestOpts())
	if err != nil {
		t.Fatalf("buildRepresentation failed: %v", err)
	}

	if len(payload) != 16*16 {
		t.Fatalf("mask payload = %d bytes, want %d", len(payload), 16*16)
	}
	for i, b := range payload {
		if b != 200 {
			t.Fatalf("mask byte %d = %d, want 200", i, b)
		}
	}
}

func TestRGBPayloadChannelPlanes(t *testing.T) {
	src := flatImage(64, 64, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	payload, err := buildRepresentation(src, TypeIS32, nearestOpts())
	if err != nil {
		t.Fatalf("buildRepresentation failed: %v", err)
	}

	var want []byte
	for _, v := range []byte{10, 20, 30} { // R, G, B planes
		want = append(want, mustCompress(t, bytes.Repeat([]byte{v}, 16*16))...)
	}
	if !bytes.Equal(payload, want) {
		t.Errorf("is32 payload = %d bytes, want %d (channel-planar R,G,B)", len(payload), len(want))
	}
}

func TestIT32ZeroPrefix(t *testing.T) {
	src := flatImage(256, 256, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	payload, err := buildRepresentation(src, TypeIT32, nearestOpts())
	if err != nil {
		t.Fatalf("buildRepresentation failed: %v", err)
	}

	if !bytes.Equal(payload[:4], []byte{0, 0, 0, 0}) {
		t.Errorf("it32 payload prefix = %#v, want 4 zero bytes", payload[:4])
	}

	var want []byte
	for _, v := range []byte{1, 2, 3} {
		want = append(want, mustCompress(t, bytes.Repeat([]byte{v}, 128*128))...)
	}
	if !bytes.Equal(payload[4:], want) {
		t.Errorf("it32 channel planes differ after prefix")
	}
}

func TestARGBPayloadPrefixAndOrder(t *testing.T) {
	src := flatImage(32, 32, color.NRGBA{R: 40, G: 50, B: 60, A: 70})

	payload, err := buildRepresentation(src, TypeIC04, nearestOpts())
	if err != nil {
		t.Fatalf("buildRepresentation failed: %v", err)
	}

	if !bytes.Equal(payload[:4], []byte("ARGB")) {
		t.Fatalf("ic04 payload prefix = %q, want \"ARGB\"", payload[:4])
	}

	want := []byte("ARGB")
	for _, v := range []byte{70, 40, 50, 60} { // A, R, G, B planes
		want = append(want, mustCompress(t, bytes.Repeat([]byte{v}, 16*16))...)
	}
	if !bytes.Equal(payload, want) {
		t.Errorf("ic04 payload = %d bytes, want %d (A,R,G,B planes)", len(payload), len(want))
	}
}

func TestPNGPayload(t *testing.T) {
	src := flatImage(512, 512, color.NRGBA{R: 90, G: 90, B: 90, A: 255})

	payload, err := buildRepresentation(src, TypeIC07, nearestOpts())
	if err != nil {
		t.Fatalf("buildRepresentation failed: %v", err)
	}

	if !bytes.HasPrefix(payload, pngSignature) {
		t.Fatalf("ic07 payload does not start with the PNG signature")
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("DecodeConfig failed: %v", err)
	}
	if cfg.Width != 128 || cfg.Height != 128 {
		t.Errorf("ic07 dimensions = %dx%d, want 128x128", cfg.Width, cfg.Height)
	}
}

func TestIndexedDepthRejected(t *testing.T) {
	src := flatImage(64, 64, color.NRGBA{A: 255})

	for _, code := range []Type{TypeICS8, TypeICL8, TypeICH8} {
		_, err := buildRepresentation(src, code, nearestOpts())
		if !errors.Is(err, icnserrors.ErrUnsupportedDepth) {
			t.Errorf("buildRepresentation(%q) err = %v, want ErrUnsupportedDepth", code, err)
		}
	}
}

func TestUpscaleDisabled(t *testing.T) {
	src := flatImage(16, 16, color.NRGBA{A: 255})

	opts := nearestOpts()
	opts.allowUpscale = false

	_, err := buildRepresentation(src, TypeIC10, opts)
	if !errors.Is(err, icnserrors.ErrResample) {
		t.Errorf("upscale-disabled build err = %v, want ErrResample", err)
	}

	// Same request succeeds once upscaling is allowed.
	opts.allowUpscale = true
	if _, err := buildRepresentation(src, TypeIC10, opts); err != nil {
		t.Errorf("upscale-enabled build failed: %v", err)
	}
}

func TestNonSquareSourceCenterCrops(t *testing.T) {
	src := flatImage(64, 32, color.NRGBA{R: 5, G: 5, B: 5, A: 255})

	payload, err := buildRepresentation(src, TypeIC11, nearestOpts())
	if err != nil {
		t.Fatalf("buildRepresentation failed: %v", err)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("DecodeConfig failed: %v", err)
	}
	if cfg.Width != 32 || cfg.Height != 32 {
		t.Errorf("ic11 dimensions = %dx%d, want 32x32 after center crop", cfg.Width, cfg.Height)
	}
}
