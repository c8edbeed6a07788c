package dwm1001

import (
	"fmt"
	"regexp"
	"strconv"
)

// Acceleration is one sample from the module's onboard LIS2DH12TR
// accelerometer, as raw register counts on the default 2g full-scale
// range. Divide by 2^6 to express a reading in gravities.
type Acceleration struct {
	XRaw int
	YRaw int
	ZRaw int
}

// countsPerGravity converts raw counts on the 2g scale to gravities.
const countsPerGravity = 64

// Example av line: acc: x = -256, y = 1424, z = 8032
var accelPattern = regexp.MustCompile(`acc: x = (-?\d+), y = (-?\d+), z = (-?\d+)`)

func parseAcceleration(out string) (Acceleration, error) {
	m := accelPattern.FindStringSubmatch(out)
	if m == nil {
		return Acceleration{}, &ParseError{Cmd: cmdAccelerometer, Output: out}
	}

	x, _ := strconv.Atoi(m[1])
	y, _ := strconv.Atoi(m[2])
	z, _ := strconv.Atoi(m[3])
	return Acceleration{XRaw: x, YRaw: y, ZRaw: z}, nil
}

// Gravities returns the sample converted to units of g.
func (a Acceleration) Gravities() (x, y, z float64) {
	return float64(a.XRaw) / countsPerGravity,
		float64(a.YRaw) / countsPerGravity,
		float64(a.ZRaw) / countsPerGravity
}

func (a Acceleration) String() string {
	return fmt.Sprintf("x=%d y=%d z=%d", a.XRaw, a.YRaw, a.ZRaw)
}
