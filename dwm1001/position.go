package dwm1001

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Position is a tag's estimated 3D position. Coordinates are in meters;
// Quality is the firmware's 0-100 confidence factor for the estimate.
type Position struct {
	X       float64
	Y       float64
	Z       float64
	Quality int
}

// Example apg line: x:10 y:78888 z:-334 qf:57 (values in mm)
var positionPattern = regexp.MustCompile(`x:(-?\d+) y:(-?\d+) z:(-?\d+) qf:(\d+)`)

// parsePosition extracts a Position from `apg` output. The firmware
// reports millimeters; coordinates are converted to meters.
func parsePosition(out string) (Position, error) {
	m := positionPattern.FindStringSubmatch(out)
	if m == nil {
		return Position{}, &ParseError{Cmd: cmdPosition, Output: out}
	}

	xMM, _ := strconv.Atoi(m[1])
	yMM, _ := strconv.Atoi(m[2])
	zMM, _ := strconv.Atoi(m[3])
	quality, _ := strconv.Atoi(m[4])

	return Position{
		X:       float64(xMM) / 1000,
		Y:       float64(yMM) / 1000,
		Z:       float64(zMM) / 1000,
		Quality: quality,
	}, nil
}

// AlmostEqual reports whether two positions agree coordinate-wise within
// the given relative tolerance. Quality is not compared.
func (p Position) AlmostEqual(other Position, relativeTolerance float64) bool {
	return isClose(p.X, other.X, relativeTolerance) &&
		isClose(p.Y, other.Y, relativeTolerance) &&
		isClose(p.Z, other.Z, relativeTolerance)
}

func isClose(a, b, relTol float64) bool {
	return math.Abs(a-b) <= relTol*math.Max(math.Abs(a), math.Abs(b))
}

func (p Position) String() string {
	return fmt.Sprintf("x=%.2fm y=%.2fm z=%.2fm qf=%d", p.X, p.Y, p.Z, p.Quality)
}
