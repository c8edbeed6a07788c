package dwm1001

import "strings"

// NodeMode is the operating role of a DWM1001 node in a positioning
// network.
type NodeMode int

const (
	ModeUnknown NodeMode = iota
	ModeTag
	ModeAnchor
	ModeAnchorInitiator
)

func (m NodeMode) String() string {
	switch m {
	case ModeTag:
		return "tag"
	case ModeAnchor:
		return "anchor"
	case ModeAnchorInitiator:
		return "anchor initiator"
	default:
		return "unknown"
	}
}

// parseNodeMode decodes `nmg` output.
//
//	mode: tn (act,twr,np,le)   tag, active
//	mode: tn (pasv,twr,lp,le)  tag, passive
//	mode: an (act,-,-)         anchor
//	mode: ani (act,-,-)        anchor initiator
func parseNodeMode(out string) (NodeMode, error) {
	switch {
	case strings.Contains(out, "mode: tn ("):
		return ModeTag, nil
	case strings.Contains(out, "mode: ani ("):
		return ModeAnchorInitiator, nil
	case strings.Contains(out, "mode: an ("):
		return ModeAnchor, nil
	}
	return ModeUnknown, &ParseError{Cmd: cmdNodeMode, Output: out}
}
