package mochiterm

// TerminalMode is a bitmask of terminal behavior flags.
// Multiple modes can be active simultaneously. Screen-scoped modes (origin,
// auto-wrap, insert, linefeed-newline, reverse-video) live on each Screen;
// the rest live on the Terminal.
type TerminalMode uint32

const (
	// ModeCursorKeys enables application cursor key mode (DECCKM).
	ModeCursorKeys TerminalMode = 1 << iota
	// ModeInsert enables insert mode (characters shift right instead of overwrite).
	ModeInsert
	// ModeOrigin enables origin mode (cursor positioning relative to scroll region).
	ModeOrigin
	// ModeAutoWrap enables automatic line wrapping at the last column (DECAWM).
	ModeAutoWrap
	// ModeLineFeedNewLine makes line feed also move to column 0 (LNM).
	ModeLineFeedNewLine
	// ModeReverseVideo swaps default foreground and background (DECSCNM).
	ModeReverseVideo
	// ModeBlinkingCursor enables cursor blink.
	ModeBlinkingCursor
	// ModeShowCursor makes the cursor visible (DECTCEM).
	ModeShowCursor
	// ModeReportFocusInOut enables focus in/out event reporting.
	ModeReportFocusInOut
	// ModeBracketedPaste enables bracketed paste mode.
	ModeBracketedPaste
	// ModeKeypadApplication enables application keypad mode.
	ModeKeypadApplication
	// ModeAltScreen is set while the alternate screen is active.
	ModeAltScreen
	// ModeSynchronizedOutput hints that output should be buffered until disabled.
	ModeSynchronizedOutput
)

// screenModes are the mode bits carried per Screen rather than on the Terminal.
const screenModes = ModeInsert | ModeOrigin | ModeAutoWrap | ModeLineFeedNewLine | ModeReverseVideo

// MouseTracking selects which mouse events are reported.
type MouseTracking int

const (
	MouseTrackingNone MouseTracking = iota
	MouseTrackingX10
	MouseTrackingVT200
	MouseTrackingButtonEvent
	MouseTrackingAnyEvent
)

// MouseEncoding selects the wire format of mouse reports.
type MouseEncoding int

const (
	MouseEncodingX10 MouseEncoding = iota
	MouseEncodingUTF8
	MouseEncodingSGR
	MouseEncodingURXVT
)
