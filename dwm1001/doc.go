// Package dwm1001 talks to a Qorvo (Decawave) DWM1001 UWB positioning
// module over its UART shell interface.
//
// The firmware exposes two interfaces on the same UART: a binary TLV API
// and a human-oriented shell bounded by the "dwm> " prompt. This package
// speaks the shell subset: it sends ASCII commands, collects the
// line-oriented response until the prompt reappears, and parses it into
// typed records (positions, anchors, accelerometer samples).
//
// A Session runs exactly one command at a time; concurrent use of one
// session is serialized by an internal mutex. There is no pipelining and
// no automatic retry: timeouts, transport failures, and malformed
// responses are surfaced to the caller as distinct error kinds.
package dwm1001
