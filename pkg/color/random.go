package color

import (
	"github.com/cozy/exavatar/pkg/utils"
)

// Random returns an opaque color with random channels.
func Random(r utils.Rand) *Color {
	return &Color{
		Space:  SpaceRGB,
		Values: [3]float64{float64(r.IntN(256)), float64(r.IntN(256)), float64(r.IntN(256))},
		Alpha:  1,
	}
}
