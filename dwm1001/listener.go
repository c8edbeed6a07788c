package dwm1001

import (
	"strconv"
	"strings"
)

// PositionReport is one entry from the CSV location report stream a
// listener-mode node emits after `lec` is enabled. NodeID is the short
// address of the reporting tag; it is empty when a tag-mode node reports
// its own position (the 4-field form).
type PositionReport struct {
	Index    int
	NodeID   string
	Position Position
}

// Listener consumes the passive position-report stream from a node in
// listener mode. Reports from every tag in earshot arrive unsolicited
// once reporting is started.
type Listener struct {
	node *Node
}

// NewListener wraps a connected node.
func NewListener(node *Node) *Listener {
	return &Listener{node: node}
}

// Start enables the CSV location report stream. The node must be in
// shell mode.
func (l *Listener) Start() error {
	_, err := l.node.session.Run(cmdCSVReports)
	return err
}

// Stop disables the report stream. `lec` is a toggle, so this is the
// same exchange as Start.
func (l *Listener) Stop() error {
	_, err := l.node.session.Run(cmdCSVReports)
	return err
}

// WaitForReport blocks until the next position report line arrives,
// bounded by the session's shell timeout. Non-report chatter on the
// line (distance records, log lines) is skipped.
func (l *Listener) WaitForReport() (PositionReport, error) {
	for {
		line, err := l.node.session.ReadReportLine()
		if err != nil {
			return PositionReport{}, err
		}
		if !strings.HasPrefix(line, "POS,") {
			continue
		}
		return parsePositionReport(line)
	}
}

// parsePositionReport decodes one CSV report line. Two layouts exist:
//
//	POS,<idx>,<nodeID>,<x>,<y>,<z>,<qf>[,...]  listener reporting a tag
//	POS,<x>,<y>,<z>,<qf>                       tag reporting itself
//
// Coordinates are already in meters.
func parsePositionReport(line string) (PositionReport, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")

	var report PositionReport
	var coords []string

	switch {
	case len(fields) >= 7:
		idx, err := strconv.Atoi(fields[1])
		if err != nil {
			return PositionReport{}, &ParseError{Cmd: cmdCSVReports, Output: line}
		}
		report.Index = idx
		report.NodeID = fields[2]
		coords = fields[3:7]
	case len(fields) == 5:
		coords = fields[1:5]
	default:
		return PositionReport{}, &ParseError{Cmd: cmdCSVReports, Output: line}
	}

	x, err1 := strconv.ParseFloat(coords[0], 64)
	y, err2 := strconv.ParseFloat(coords[1], 64)
	z, err3 := strconv.ParseFloat(coords[2], 64)
	quality, err4 := strconv.Atoi(coords[3])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return PositionReport{}, &ParseError{Cmd: cmdCSVReports, Output: line}
	}

	report.Position = Position{X: x, Y: y, Z: z, Quality: quality}
	return report, nil
}
