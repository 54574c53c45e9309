// Package parser implements the VT/xterm escape-sequence byte-stream state
// machine. It is a pure parser: it knows nothing about screens, cursors, or
// cells. It turns bytes into a stream of calls against a Handler.
package parser

// Handler receives parsed actions. Parse is total: it never fails and never
// panics, regardless of the byte stream fed to it.
type Handler interface {
	// Print is called for one decoded printable rune (UTF-8 or ASCII 0x20-0x7E).
	Print(r rune)
	// Execute is called for one C0 control byte other than ESC. 8-bit C1
	// bytes never reach Execute: the string and CSI introducers and ST
	// change parser state, and the rest print U+FFFD.
	Execute(b byte)
	// CsiDispatch is called once a CSI sequence reaches its final byte.
	// subParams[i] holds the ':'-separated values following params[i] (empty
	// when none were given). private is 0 when no private marker was seen.
	CsiDispatch(params []int, subParams [][]int, intermediates []byte, private byte, final byte)
	// EscDispatch is called once an ESC sequence reaches its final byte.
	EscDispatch(intermediates []byte, final byte)
	// OscDispatch is called once an OSC string is terminated (BEL or ST).
	// command is the leading numeric field; hasCommand is false if the
	// string had no leading digits before ';' or end.
	OscDispatch(command int, hasCommand bool, payload []byte)
	// DcsHook is called when a DCS sequence's parameters are complete and the
	// string portion begins.
	DcsHook(params []int, intermediates []byte, private byte, final byte)
	// DcsPut is called once per byte of DCS string data.
	DcsPut(b byte)
	// DcsUnhook is called when the DCS string is terminated.
	DcsUnhook()
	// SosPmApcDispatch is called when a SOS/PM/APC string is terminated.
	// kind is 'X' (SOS), '^' (PM), or '_' (APC).
	SosPmApcDispatch(kind byte, payload []byte)
}
