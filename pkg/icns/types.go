package icns

import (
	"fmt"

	icnserrors "github.com/provide-io/icns-go/pkg/icns/errors"
)

// Type is a 4-byte OSType-style tag identifying one icon variant.
// Only the declared constants are registered; codes are never built ad hoc.
type Type string

// Registered icon type codes.
// The full list is documented at
// https://en.wikipedia.org/wiki/Apple_Icon_Image_format#Icon_types
const (
	// 24-bit RGB icons, System 8.5+ (it32 is Mac OS X 10.0+)
	TypeIS32 Type = "is32" // 16x16
	TypeIL32 Type = "il32" // 32x32
	TypeIH32 Type = "ih32" // 48x48
	TypeIT32 Type = "it32" // 128x128

	// 8-bit alpha masks paired with the RGB icons above
	TypeS8MK Type = "s8mk" // 16x16
	TypeL8MK Type = "l8mk" // 32x32
	TypeH8MK Type = "h8mk" // 48x48
	TypeT8MK Type = "t8mk" // 128x128

	// 8-bit indexed color icons, registered for catalog completeness only.
	// Building them is rejected: quantizing a true-color source to the
	// fixed 8-bit palette is not implemented.
	TypeICS8 Type = "ics8" // 16x16
	TypeICL8 Type = "icl8" // 32x32
	TypeICH8 Type = "ich8" // 48x48

	// ARGB icons (PackBits planes with an "ARGB" payload prefix)
	TypeIC04 Type = "ic04" // 16x16
	TypeIC05 Type = "ic05" // 32x32

	// PNG icons, Mac OS X 10.5+ / 10.7+ / 10.8+
	TypeIC07 Type = "ic07" // 128x128
	TypeIC08 Type = "ic08" // 256x256
	TypeIC09 Type = "ic09" // 512x512
	TypeIC10 Type = "ic10" // 1024x1024 (512x512@2x)
	TypeIC11 Type = "ic11" // 32x32 (16x16@2x)
	TypeIC12 Type = "ic12" // 64x64 (32x32@2x)
	TypeIC13 Type = "ic13" // 256x256 (128x128@2x)
	TypeIC14 Type = "ic14" // 512x512 (256x256@2x)

	// PNG icons with legacy icp names, Mac OS X 10.7+
	TypeICP4 Type = "icp4" // 16x16
	TypeICP5 Type = "icp5" // 32x32
	TypeICP6 Type = "icp6" // 64x64
)

// TypeTOC tags the table-of-contents chunk. It is part of the container,
// not the icon catalog, and is never requested by callers.
const TypeTOC Type = "TOC "

// Kind is the payload encoding of an icon type.
type Kind int

const (
	KindRGB     Kind = iota // PackBits-compressed R,G,B planes
	KindARGB                // "ARGB" prefix + PackBits A,R,G,B planes
	KindMask                // raw 8-bit alpha plane
	KindPNG                 // verbatim PNG bytes
	KindIndexed             // 8-bit indexed, build rejected
)

func (k Kind) String() string {
	switch k {
	case KindRGB:
		return "rgb"
	case KindARGB:
		return "argb"
	case KindMask:
		return "mask"
	case KindPNG:
		return "png"
	case KindIndexed:
		return "indexed"
	default:
		return "unknown"
	}
}

// Spec describes one registered icon type: square pixel size, color depth
// in bits per pixel, and payload encoding. Specs are read-only constants;
// exactly one spec exists per type code.
type Spec struct {
	Size  int
	Depth int
	Kind  Kind
}

// registry holds every known type in declared order. The order is the
// deterministic reference order for reproducible container output.
var registry = []struct {
	code Type
	spec Spec
}{
	{TypeIS32, Spec{Size: 16, Depth: 24, Kind: KindRGB}},
	{TypeIL32, Spec{Size: 32, Depth: 24, Kind: KindRGB}},
	{TypeIH32, Spec{Size: 48, Depth: 24, Kind: KindRGB}},
	{TypeIT32, Spec{Size: 128, Depth: 24, Kind: KindRGB}},
	{TypeS8MK, Spec{Size: 16, Depth: 8, Kind: KindMask}},
	{TypeL8MK, Spec{Size: 32, Depth: 8, Kind: KindMask}},
	{TypeH8MK, Spec{Size: 48, Depth: 8, Kind: KindMask}},
	{TypeT8MK, Spec{Size: 128, Depth: 8, Kind: KindMask}},
	{TypeICS8, Spec{Size: 16, Depth: 8, Kind: KindIndexed}},
	{TypeICL8, Spec{Size: 32, Depth: 8, Kind: KindIndexed}},
	{TypeICH8, Spec{Size: 48, Depth: 8, Kind: KindIndexed}},
	{TypeIC04, Spec{Size: 16, Depth: 32, Kind: KindARGB}},
	{TypeIC05, Spec{Size: 32, Depth: 32, Kind: KindARGB}},
	{TypeIC07, Spec{Size: 128, Depth: 32, Kind: KindPNG}},
	{TypeIC08, Spec{Size: 256, Depth: 32, Kind: KindPNG}},
	{TypeIC09, Spec{Size: 512, Depth: 32, Kind: KindPNG}},
	{TypeIC10, Spec{Size: 1024, Depth: 32, Kind: KindPNG}},
	{TypeIC11, Spec{Size: 32, Depth: 32, Kind: KindPNG}},
	{TypeIC12, Spec{Size: 64, Depth: 32, Kind: KindPNG}},
	{TypeIC13, Spec{Size: 256, Depth: 32, Kind: KindPNG}},
	{TypeIC14, Spec{Size: 512, Depth: 32, Kind: KindPNG}},
	{TypeICP4, Spec{Size: 16, Depth: 32, Kind: KindPNG}},
	{TypeICP5, Spec{Size: 32, Depth: 32, Kind: KindPNG}},
	{TypeICP6, Spec{Size: 64, Depth: 32, Kind: KindPNG}},
}

var specs = func() map[Type]Spec {
	m := make(map[Type]Spec, len(registry))
	for _, e := range registry {
		m[e.code] = e.spec
	}
	return m
}()

// SpecFor looks up the spec for a type code.
func SpecFor(code Type) (Spec, error) {
	spec, ok := specs[code]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", icnserrors.ErrUnknownTypeCode, string(code))
	}
	return spec, nil
}

// OSType returns the 4-byte wire tag for a type code.
func (t Type) OSType() [4]byte {
	var b [4]byte
	copy(b[:], t)
	return b
}

// Recommended returns the modern PNG-encoded types covering every Retina
// and non-Retina size from 16x16@2x up to 512x512@2x. The set is stable
// across versions and contains no legacy raw or mask types.
func Recommended() []Type {
	return []Type{
		TypeIC07, TypeIC08, TypeIC09, TypeIC10,
		TypeIC11, TypeIC12, TypeIC13, TypeIC14,
	}
}

// AllKnown returns every registered type code in registry order,
// including the legacy raw/mask pairs and the rejected indexed types.
func AllKnown() []Type {
	out := make([]Type, len(registry))
	for i, e := range registry {
		out[i] = e.code
	}
	return out
}
