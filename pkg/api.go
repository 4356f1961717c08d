package pkg

import (
	"image"

	"github.com/provide-io/icns-go/pkg/icns"
)

// Encode builds an ICNS container holding the given formats.
func Encode(img image.Image, formats []icns.Type) ([]byte, error) {
	return icns.NewEncoder().Data(img).Formats(formats).Build()
}

// EncodeRecommended builds an ICNS container with the modern PNG format set.
func EncodeRecommended(img image.Image) ([]byte, error) {
	return Encode(img, icns.Recommended())
}
