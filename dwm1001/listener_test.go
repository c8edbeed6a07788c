package dwm1001

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acrandal/dwm1001-go/transports"
)

func newTestListener(t *testing.T, mock *transports.MockTransport) *Listener {
	t.Helper()

	mock.Stub("lec\n", "lec\r\ndwm> ")

	listener := NewListener(newTestNode(t, mock))
	require.NoError(t, listener.Start())
	return listener
}

func TestListenerWaitForReport(t *testing.T) {
	mock := &transports.MockTransport{}

	listener := newTestListener(t, mock)
	defer listener.node.Close()

	// Distance chatter is skipped; the POS line is the report.
	mock.Preload("DIST,4,AN0,C584,6.44,4.39,0.00,4.18\r\n" +
		"POS,0,5A66,5.25,2.33,1.11,83,x0A\r\n")

	report, err := listener.WaitForReport()
	require.NoError(t, err)
	assert.Equal(t, 0, report.Index)
	assert.Equal(t, "5A66", report.NodeID)
	assert.InDelta(t, 5.25, report.Position.X, 1e-9)
	assert.InDelta(t, 2.33, report.Position.Y, 1e-9)
	assert.InDelta(t, 1.11, report.Position.Z, 1e-9)
	assert.Equal(t, 83, report.Position.Quality)
}

func TestListenerTagSelfReport(t *testing.T) {
	mock := &transports.MockTransport{}

	listener := newTestListener(t, mock)
	defer listener.node.Close()

	mock.Preload("POS,5.25,2.33,1.11,83\r\n")

	report, err := listener.WaitForReport()
	require.NoError(t, err)
	assert.Empty(t, report.NodeID)
	assert.InDelta(t, 5.25, report.Position.X, 1e-9)
	assert.Equal(t, 83, report.Position.Quality)
}

func TestListenerMalformedReport(t *testing.T) {
	mock := &transports.MockTransport{}

	listener := newTestListener(t, mock)
	defer listener.node.Close()

	mock.Preload("POS,abc,def\r\n")

	_, err := listener.WaitForReport()
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestListenerTimeout(t *testing.T) {
	mock := &transports.MockTransport{}

	listener := newTestListener(t, mock)
	defer listener.node.Close()

	_, err := listener.WaitForReport()
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestParsePositionReportForms(t *testing.T) {
	report, err := parsePositionReport("POS,2,0E0B,0.64,8.63,1.13,45,x0C")
	require.NoError(t, err)
	assert.Equal(t, 2, report.Index)
	assert.Equal(t, "0E0B", report.NodeID)
	assert.Equal(t, 45, report.Position.Quality)

	_, err = parsePositionReport("POS,1.0,2.0")
	assert.ErrorIs(t, err, ErrMalformedResponse)

	_, err = parsePositionReport("POS,x,5A66,1.0,2.0,3.0,50,x01")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}
