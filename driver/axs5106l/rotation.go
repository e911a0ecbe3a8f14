package axs5106l

import (
	"fmt"
)

// Rotation is the mounting of the panel relative to the sensor.
type Rotation int

const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

func ParseRotation(s string) (Rotation, error) {
	switch s {
	case "0":
		return Rotate0, nil
	case "90":
		return Rotate90, nil
	case "180":
		return Rotate180, nil
	case "270":
		return Rotate270, nil
	}
	return 0, fmt.Errorf("axs5106l: invalid rotation %q", s)
}

func (r Rotation) String() string {
	switch r {
	case Rotate0:
		return "0"
	case Rotate90:
		return "90"
	case Rotate180:
		return "180"
	case Rotate270:
		return "270"
	}
	return fmt.Sprintf("Rotation(%d)", int(r))
}

// Transform maps a sensor point to display coordinates for a panel of
// the given native size.
//
// The sensor axes are swapped relative to the framebuffer in the 90 and 270
// degree mountings, which is why those cases mix width and height. The
// mapping is not a geometric rotation.
func Transform(r Rotation, p Coordinates, width, height uint16) Coordinates {
	switch r {
	case Rotate90:
		return Coordinates{X: p.Y, Y: p.X}
	case Rotate180:
		return Coordinates{X: p.X, Y: flip(height, p.Y)}
	case Rotate270:
		return Coordinates{X: flip(height, p.X), Y: flip(width, p.Y)}
	default:
		return Coordinates{X: flip(width, p.X), Y: p.Y}
	}
}

// flip returns size-1-v, clamped to zero.
func flip(size, v uint16) uint16 {
	if size == 0 || v >= size-1 {
		return 0
	}
	return size - 1 - v
}
