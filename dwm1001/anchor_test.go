package dwm1001

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const anchorListOutput = "la\r\n" +
	"[005899.170 INF] AN: cnt=3 seq=x09\r\n" +
	"[003976.620 INF]   0) id=000000000000C920 seat=0 idl=0 seens=40 lqi=0 fl=5001 map=00000000 pos=0.38:0.84:2.15\r\n" +
	"[003976.630 INF]   1) id=0000000000008389 seat=3 idl=0 seens=116 lqi=0 fl=5001 map=00000002 pos=4.96:2.50:1.78\r\n" +
	"[003976.640 INF]   2) id=0000000000000E0B seat=4 idl=0 seens=103 lqi=0 fl=5001 map=00000002 pos=0.64:8.63:1.13\r\n"

func TestParseAnchorList(t *testing.T) {
	anchors, err := parseAnchorList(anchorListOutput)
	require.NoError(t, err)
	require.Len(t, anchors, 3)

	first := anchors[0]
	assert.Equal(t, "000000000000C920", first.ID)
	assert.Equal(t, 0, first.Seat)
	assert.Equal(t, 40, first.Seens)
	assert.InDelta(t, 0.38, first.Position.X, 1e-9)
	assert.InDelta(t, 0.84, first.Position.Y, 1e-9)
	assert.InDelta(t, 2.15, first.Position.Z, 1e-9)

	last := anchors[2]
	assert.Equal(t, "0000000000000E0B", last.ID)
	assert.Equal(t, 4, last.Seat)
	assert.Equal(t, 103, last.Seens)
}

func TestParseAnchorListEmpty(t *testing.T) {
	out := "la\r\n[005899.170 INF] AN: cnt=0 seq=x00\r\n"

	anchors, err := parseAnchorList(out)
	require.NoError(t, err)
	assert.Empty(t, anchors)
}

func TestParseAnchorLineMalformed(t *testing.T) {
	// A seat field is present but the rest of the layout is truncated.
	_, err := parseAnchorList("0) id=C920 seat=0 idl=0\r\n")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestParseAnchorCount(t *testing.T) {
	count, err := parseAnchorCount(anchorListOutput)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestParseAnchorCountMalformed(t *testing.T) {
	_, err := parseAnchorCount("la\r\nno header here\r\n")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}
