package dwm1001

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAcceleration(t *testing.T) {
	out := "av\r\nacc: x = -256, y = 1424, z = 8032\r\n"

	acc, err := parseAcceleration(out)
	require.NoError(t, err)
	assert.Equal(t, Acceleration{XRaw: -256, YRaw: 1424, ZRaw: 8032}, acc)
}

func TestParseAccelerationHighValues(t *testing.T) {
	out := "av\r\nacc: x = 11264, y = -7216, z = -9040\r\n"

	acc, err := parseAcceleration(out)
	require.NoError(t, err)
	assert.Equal(t, Acceleration{XRaw: 11264, YRaw: -7216, ZRaw: -9040}, acc)
}

func TestParseAccelerationMalformed(t *testing.T) {
	_, err := parseAcceleration("acc: x = 1, y = 2")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestAccelerationGravities(t *testing.T) {
	acc := Acceleration{XRaw: 64, YRaw: -128, ZRaw: 32}

	x, y, z := acc.Gravities()
	assert.InDelta(t, 1.0, x, 1e-9)
	assert.InDelta(t, -2.0, y, 1e-9)
	assert.InDelta(t, 0.5, z, 1e-9)
}
