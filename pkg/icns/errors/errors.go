// Package errors defines the sentinel errors shared across the ICNS encoder.
// All failures are typed so callers can match with errors.Is and decide
// whether to drop a format from the request and rebuild.
package errors

import "errors"

var (
	// Registry errors 📇
	ErrUnknownTypeCode   = errors.New("❌ unknown icon type code")
	ErrDuplicateTypeCode = errors.New("❌ duplicate icon type code in request")

	// Facade errors 🧰
	ErrMissingSourceImage = errors.New("❌ no source image configured")
	ErrMissingFormats     = errors.New("❌ no icon formats configured")

	// Representation errors 🖼️
	ErrResample         = errors.New("❌ source image too small for requested size")
	ErrEncode           = errors.New("❌ PNG encoding failed")
	ErrUnsupportedDepth = errors.New("❌ bit depth not representable from true-color source")

	// Container errors 📦
	ErrPayloadTooLarge = errors.New("❌ chunk payload exceeds 32-bit length field")

	// PackBits errors 🗜️
	ErrMalformedPackBits = errors.New("❌ malformed PackBits stream")
	ErrPackBitsOverflow  = errors.New("❌ PackBits run exceeds control range")
)
