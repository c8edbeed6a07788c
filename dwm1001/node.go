package dwm1001

import (
	"regexp"
	"strconv"
	"time"
)

// Node provides the high-level interface to a DWM1001 over its UART
// shell. Typical use:
//
//	node, err := dwm1001.Open(dwm1001.Config{Port: "/dev/ttyACM0"})
//	...
//	if err := node.Connect(); err != nil { ... }
//	pos, err := node.Position()
//	node.Disconnect()
//	node.Close()
type Node struct {
	session *Session
}

// Open creates a node from the given configuration, opening a serial
// transport when none is supplied.
func Open(cfg Config) (*Node, error) {
	session, err := NewSession(cfg)
	if err != nil {
		return nil, err
	}
	return NewNode(session), nil
}

// NewNode wraps an existing session.
func NewNode(session *Session) *Node {
	return &Node{session: session}
}

// Session exposes the underlying shell session.
func (n *Node) Session() *Session {
	return n.session
}

// Connect brings the device into shell mode.
func (n *Node) Connect() error {
	return n.session.Connect()
}

// Disconnect resets the device back to its binary (non-shell) interface.
func (n *Node) Disconnect() error {
	return n.session.Disconnect()
}

// Reset reboots the device.
func (n *Node) Reset() error {
	return n.session.Reset()
}

// Close releases the serial transport. Idempotent.
func (n *Node) Close() error {
	return n.session.Close()
}

// Position queries the node's current position estimate.
func (n *Node) Position() (Position, error) {
	out, err := n.session.Run(cmdPosition)
	if err != nil {
		return Position{}, err
	}
	return parsePosition(out)
}

// Acceleration samples the onboard accelerometer.
func (n *Node) Acceleration() (Acceleration, error) {
	out, err := n.session.Run(cmdAccelerometer)
	if err != nil {
		return Acceleration{}, err
	}
	return parseAcceleration(out)
}

// Mode queries the node's operating role.
func (n *Node) Mode() (NodeMode, error) {
	out, err := n.session.Run(cmdNodeMode)
	if err != nil {
		return ModeUnknown, err
	}
	return parseNodeMode(out)
}

// IsTag reports whether the node runs in tag mode.
func (n *Node) IsTag() (bool, error) {
	mode, err := n.Mode()
	return mode == ModeTag, err
}

// IsAnchor reports whether the node runs in anchor mode.
func (n *Node) IsAnchor() (bool, error) {
	mode, err := n.Mode()
	return mode == ModeAnchor, err
}

// IsAnchorInitiator reports whether the node runs as the initiating anchor.
func (n *Node) IsAnchorInitiator() (bool, error) {
	mode, err := n.Mode()
	return mode == ModeAnchorInitiator, err
}

// Anchors lists the anchors the node currently sees.
func (n *Node) Anchors() ([]Anchor, error) {
	out, err := n.session.Run(cmdAnchorList)
	if err != nil {
		return nil, err
	}
	return parseAnchorList(out)
}

// AnchorCount reports how many anchors the node currently sees.
func (n *Node) AnchorCount() (int, error) {
	out, err := n.session.Run(cmdAnchorList)
	if err != nil {
		return 0, err
	}
	return parseAnchorCount(out)
}

// Uptime queries how long the node has been running.
func (n *Node) Uptime() (time.Duration, error) {
	out, err := n.session.Run(cmdUptime)
	if err != nil {
		return 0, err
	}
	return parseUptime(out)
}

// SystemInfo returns the node's raw multi-line `si` dump.
func (n *Node) SystemInfo() (string, error) {
	return n.session.Run(cmdSystemInfo)
}

// BLEAddress returns the node's Bluetooth LE MAC address.
func (n *Node) BLEAddress() (string, error) {
	out, err := n.SystemInfo()
	if err != nil {
		return "", err
	}
	return parseBLEAddress(out)
}

// NetworkID returns the UWB network (PAN) ID the node is associated with,
// in the firmware's hex notation, e.g. "xC7D4".
func (n *Node) NetworkID() (string, error) {
	out, err := n.SystemInfo()
	if err != nil {
		return "", err
	}
	return parseNetworkID(out)
}

// Example ut line: [002673.760 INF] uptime: 00:44:33.760 0 days (2673760 ms)
var uptimePattern = regexp.MustCompile(`uptime: [0-9:.]+ \d+ days? \((\d+) ms\)`)

func parseUptime(out string) (time.Duration, error) {
	m := uptimePattern.FindStringSubmatch(out)
	if m == nil {
		return 0, &ParseError{Cmd: cmdUptime, Output: out}
	}
	ms, _ := strconv.Atoi(m[1])
	return time.Duration(ms) * time.Millisecond, nil
}

// Example si line: [036167.350 INF] ble: addr=E0:E5:D3:0A:19:BE
var bleAddressPattern = regexp.MustCompile(`ble: addr=([0-9A-F:]+)`)

func parseBLEAddress(out string) (string, error) {
	m := bleAddressPattern.FindStringSubmatch(out)
	if m == nil {
		return "", &ParseError{Cmd: cmdSystemInfo, Output: out}
	}
	return m[1], nil
}

// Example si line: [036167.320 INF] uwb0: panid=xC7D4 addr=xDECA59CDFA608830
var networkIDPattern = regexp.MustCompile(`panid=(x[0-9A-F]+) addr=`)

func parseNetworkID(out string) (string, error) {
	m := networkIDPattern.FindStringSubmatch(out)
	if m == nil {
		return "", &ParseError{Cmd: cmdSystemInfo, Output: out}
	}
	return m[1], nil
}
