package dwm1001

import (
	"regexp"
	"strconv"
	"strings"
)

// Anchor describes one fixed reference node as reported by the `la`
// command: its 64-bit ID, the seat it occupies in the network, how many
// times it has been seen, and its surveyed position (meters).
type Anchor struct {
	ID       string
	Seat     int
	Seens    int
	Position Position
}

// Example anchor line:
//
//	[003976.620 INF]   0) id=000000000000C920 seat=0 idl=0 seens=40 lqi=0 fl=5001 map=00000000 pos=0.38:0.84:2.15
var anchorPattern = regexp.MustCompile(
	`id=([0-9A-F]+) seat=(\d+) idl=\d+ seens=(\d+) lqi=\d+ fl=[0-9A-Fa-f]+ map=[0-9A-Fa-f]+ pos=(-?[\d.]+):(-?[\d.]+):(-?[\d.]+)`)

// Example header line: [005899.170 INF] AN: cnt=4 seq=x09
var anchorCountPattern = regexp.MustCompile(`AN: cnt=(\d+) seq=`)

func parseAnchorLine(line string) (Anchor, error) {
	m := anchorPattern.FindStringSubmatch(line)
	if m == nil {
		return Anchor{}, &ParseError{Cmd: cmdAnchorList, Output: line}
	}

	seat, _ := strconv.Atoi(m[2])
	seens, _ := strconv.Atoi(m[3])
	x, err1 := strconv.ParseFloat(m[4], 64)
	y, err2 := strconv.ParseFloat(m[5], 64)
	z, err3 := strconv.ParseFloat(m[6], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return Anchor{}, &ParseError{Cmd: cmdAnchorList, Output: line}
	}

	return Anchor{
		ID:       m[1],
		Seat:     seat,
		Seens:    seens,
		Position: Position{X: x, Y: y, Z: z},
	}, nil
}

// parseAnchorList extracts every anchor entry from a full `la` response.
// Lines without a seat field (the count header, shell echo) are skipped.
func parseAnchorList(out string) ([]Anchor, error) {
	var anchors []Anchor
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, " seat=") {
			continue
		}
		anchor, err := parseAnchorLine(line)
		if err != nil {
			return nil, err
		}
		anchors = append(anchors, anchor)
	}
	return anchors, nil
}

// parseAnchorCount extracts the seen-anchor count from the `la` header.
func parseAnchorCount(out string) (int, error) {
	m := anchorCountPattern.FindStringSubmatch(out)
	if m == nil {
		return 0, &ParseError{Cmd: cmdAnchorList, Output: out}
	}
	count, _ := strconv.Atoi(m[1])
	return count, nil
}
