// Package color decodes hex colour text used by Color properties.
package color

import (
	"strconv"
	"strings"

	"github.com/Harshitk-cp/brainbase/internal/domain"
)

// HexDecoder accepts #rgb, #rrggbb and #rrggbbaa, with or without the leading '#'.
type HexDecoder struct{}

func NewHexDecoder() *HexDecoder {
	return &HexDecoder{}
}

func (HexDecoder) Decode(text string) (domain.Color, bool) {
	hex := strings.TrimPrefix(strings.TrimSpace(text), "#")

	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return domain.Color{}, false
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return domain.Color{}, false
	}

	return domain.Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, true
}
