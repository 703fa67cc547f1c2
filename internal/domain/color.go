package domain

// Color is an RGBA colour with channels in [0, 1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// FallbackColor replaces colour text that cannot be decoded.
var FallbackColor = Color{R: 1, G: 0, B: 1, A: 1}

type ColorDecoder interface {
	Decode(text string) (Color, bool)
}
