package mochiterm

import (
	"encoding/base64"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/mochiterm/mochiterm/parser"
)

// Terminal is the performer: it implements parser.Handler and maps parsed
// actions onto Screen operations and outbound response payloads. All logic
// here is a pure function of (action, terminal state); no I/O happens except
// through the response queue and providers.
var _ parser.Handler = (*Terminal)(nil)

// dcsState accumulates one in-flight DCS string between hook and unhook.
type dcsState struct {
	active        bool
	final         byte
	intermediates []byte
	params        []int
	data          []byte
}

// Print applies charset translation and writes one printable rune.
func (t *Terminal) Print(r rune) {
	t.mu.Lock()
	r = t.active.charsets.Translate(r)
	t.mu.Unlock()

	t.Input(r)
}

// Execute handles a C0/C1 control byte.
func (t *Terminal) Execute(b byte) {
	switch b {
	case 0x07: // BEL
		t.Bell()
	case 0x08: // BS
		t.Backspace()
	case 0x09: // HT
		t.Tab(1)
	case 0x0A, 0x0B, 0x0C: // LF, VT, FF
		t.LineFeed()
	case 0x0D: // CR
		t.CarriageReturn()
	case 0x0E: // SO: activate G1
		t.SetActiveCharset(1)
	case 0x0F: // SI: activate G0
		t.SetActiveCharset(0)
	case 0x84: // IND
		t.Index()
	case 0x85: // NEL
		t.NextLine()
	case 0x88: // HTS
		t.HorizontalTabSet()
	case 0x8D: // RI
		t.ReverseIndex()
	default:
		t.debugf("unhandled control byte: %#x", b)
	}
}

// EscDispatch handles a completed ESC sequence.
func (t *Terminal) EscDispatch(intermediates []byte, final byte) {
	if len(intermediates) == 0 {
		switch final {
		case '7':
			t.SaveCursorPosition()
		case '8':
			t.RestoreCursorPosition()
		case 'D':
			t.Index()
		case 'E':
			t.NextLine()
		case 'H':
			t.HorizontalTabSet()
		case 'M':
			t.ReverseIndex()
		case 'N':
			t.SingleShift(2)
		case 'O':
			t.SingleShift(3)
		case 'Z':
			t.IdentifyTerminal()
		case 'c':
			t.Reset()
		case '=':
			t.SetMode(ModeKeypadApplication, true)
		case '>':
			t.SetMode(ModeKeypadApplication, false)
		case '\\':
			// ST with nothing open.
		default:
			t.debugf("unhandled ESC final: %q", final)
		}
		return
	}

	switch intermediates[0] {
	case '#':
		if final == '8' {
			t.Decaln()
		} else {
			t.debugf("unhandled ESC # final: %q", final)
		}
	case '(', ')', '*', '+':
		slot := int(intermediates[0] - '(')
		if cs, ok := charsetFromFinal(final); ok {
			t.ConfigureCharset(slot, cs)
		}
	default:
		t.debugf("unhandled ESC intermediates %q final %q", intermediates, final)
	}
}

// csiParam returns the i-th parameter with both missing and zero mapped to def.
func csiParam(params []int, i, def int) int {
	if i >= len(params) || params[i] == 0 {
		return def
	}
	return params[i]
}

// csiParamRaw returns the i-th parameter, with only missing mapped to def.
func csiParamRaw(params []int, i, def int) int {
	if i >= len(params) {
		return def
	}
	return params[i]
}

// CsiDispatch handles a completed CSI sequence.
func (t *Terminal) CsiDispatch(params []int, subParams [][]int, intermediates []byte, private byte, final byte) {
	if len(intermediates) > 0 {
		t.csiIntermediate(params, intermediates, private, final)
		return
	}

	switch private {
	case 0:
		t.csiPlain(params, subParams, final)
	case '?':
		t.csiPrivate(params, final)
	case '>':
		t.csiGreater(params, final)
	case '<':
		if final == 'u' {
			t.PopKeyboardMode(csiParam(params, 0, 1))
		} else {
			t.debugf("unhandled CSI < final: %q", final)
		}
	case '=':
		if final == 'u' {
			t.SetKeyboardMode(csiParamRaw(params, 0, 0), csiParamRaw(params, 1, 1))
		} else {
			t.debugf("unhandled CSI = final: %q", final)
		}
	default:
		t.debugf("unhandled CSI private marker: %q", private)
	}
}

func (t *Terminal) csiPlain(params []int, subParams [][]int, final byte) {
	switch final {
	case '@':
		t.InsertBlank(csiParam(params, 0, 1))
	case 'A':
		t.MoveUp(csiParam(params, 0, 1))
	case 'B', 'e':
		t.MoveDown(csiParam(params, 0, 1))
	case 'C', 'a':
		t.MoveForward(csiParam(params, 0, 1))
	case 'D':
		t.MoveBackward(csiParam(params, 0, 1))
	case 'E':
		t.MoveDownCr(csiParam(params, 0, 1))
	case 'F':
		t.MoveUpCr(csiParam(params, 0, 1))
	case 'G', '`':
		t.GotoCol(csiParam(params, 0, 1) - 1)
	case 'H', 'f':
		t.Goto(csiParam(params, 0, 1)-1, csiParam(params, 1, 1)-1)
	case 'I':
		t.Tab(csiParam(params, 0, 1))
	case 'J':
		t.ClearScreen(ScreenClearMode(csiParamRaw(params, 0, 0)))
	case 'K':
		t.ClearLine(LineClearMode(csiParamRaw(params, 0, 0)))
	case 'L':
		t.InsertBlankLines(csiParam(params, 0, 1))
	case 'M':
		t.DeleteLines(csiParam(params, 0, 1))
	case 'P':
		t.DeleteChars(csiParam(params, 0, 1))
	case 'S':
		t.ScrollUp(csiParam(params, 0, 1))
	case 'T':
		t.ScrollDown(csiParam(params, 0, 1))
	case 'X':
		t.EraseChars(csiParam(params, 0, 1))
	case 'Z':
		t.BackTab(csiParam(params, 0, 1))
	case 'c':
		t.IdentifyTerminal()
	case 'd':
		t.GotoLine(csiParam(params, 0, 1) - 1)
	case 'g':
		switch csiParamRaw(params, 0, 0) {
		case 0:
			t.ClearTabs(TabClearModeCurrent)
		case 3:
			t.ClearTabs(TabClearModeAll)
		}
	case 'h':
		t.setAnsiModes(params, true)
	case 'l':
		t.setAnsiModes(params, false)
	case 'm':
		t.applySGR(params, subParams)
	case 'n':
		t.DeviceStatus(csiParamRaw(params, 0, 0), false)
	case 'r':
		t.SetScrollingRegion(csiParamRaw(params, 0, 1), csiParamRaw(params, 1, t.Rows()))
	case 's':
		t.SaveCursorPosition()
	case 't':
		t.windowOps(params)
	case 'u':
		t.RestoreCursorPosition()
	default:
		t.debugf("unhandled CSI final: %q params %v", final, params)
	}
}

func (t *Terminal) setAnsiModes(params []int, on bool) {
	for _, p := range params {
		switch p {
		case 4: // IRM
			t.SetMode(ModeInsert, on)
		case 20: // LNM
			t.SetMode(ModeLineFeedNewLine, on)
		default:
			t.debugf("unhandled ANSI mode: %d", p)
		}
	}
}

func (t *Terminal) csiPrivate(params []int, final byte) {
	switch final {
	case 'h':
		for _, p := range params {
			t.setDecMode(p, true)
		}
	case 'l':
		for _, p := range params {
			t.setDecMode(p, false)
		}
	case 'c':
		t.IdentifyTerminal()
	case 'n':
		t.DeviceStatus(csiParamRaw(params, 0, 0), true)
	case 'u':
		t.ReportKeyboardMode()
	default:
		t.debugf("unhandled private CSI final: %q params %v", final, params)
	}
}

func (t *Terminal) csiGreater(params []int, final byte) {
	switch final {
	case 'c':
		t.SecondaryDeviceAttributes()
	case 'q':
		t.ReportVersion()
	case 'm':
		if csiParamRaw(params, 0, 0) == 4 {
			t.SetModifyOtherKeys(csiParamRaw(params, 1, 0))
		}
	case 'u':
		t.PushKeyboardMode(csiParamRaw(params, 0, 0))
	default:
		t.debugf("unhandled CSI > final: %q params %v", final, params)
	}
}

func (t *Terminal) csiIntermediate(params []int, intermediates []byte, private byte, final byte) {
	switch {
	case len(intermediates) == 1 && intermediates[0] == ' ' && final == 'q' && private == 0:
		// DECSCUSR
		switch csiParamRaw(params, 0, 1) {
		case 0, 1:
			t.SetCursorStyle(CursorStyleBlock, true)
		case 2:
			t.SetCursorStyle(CursorStyleBlock, false)
		case 3:
			t.SetCursorStyle(CursorStyleUnderline, true)
		case 4:
			t.SetCursorStyle(CursorStyleUnderline, false)
		case 5:
			t.SetCursorStyle(CursorStyleBar, true)
		case 6:
			t.SetCursorStyle(CursorStyleBar, false)
		}
	case len(intermediates) == 1 && intermediates[0] == '$' && final == 'p' && private == '?':
		// DECRQM
		mode := csiParamRaw(params, 0, 0)
		t.queueResponseString(fmt.Sprintf("\x1b[?%d;%d$y", mode, t.decModeStatus(mode)))
	default:
		t.debugf("unhandled CSI intermediates %q final %q", intermediates, final)
	}
}

// setDecMode applies one DEC private mode number.
func (t *Terminal) setDecMode(mode int, on bool) {
	switch mode {
	case 1:
		t.SetMode(ModeCursorKeys, on)
	case 5:
		t.SetMode(ModeReverseVideo, on)
	case 6:
		t.SetMode(ModeOrigin, on)
	case 7:
		t.SetMode(ModeAutoWrap, on)
	case 9:
		t.setMouseTracking(MouseTrackingX10, on)
	case 12:
		t.SetMode(ModeBlinkingCursor, on)
	case 25:
		t.SetMode(ModeShowCursor, on)
	case 47, 1047:
		if on {
			t.EnterAlternateScreen()
		} else {
			t.ExitAlternateScreen()
		}
	case 1000:
		t.setMouseTracking(MouseTrackingVT200, on)
	case 1002:
		t.setMouseTracking(MouseTrackingButtonEvent, on)
	case 1003:
		t.setMouseTracking(MouseTrackingAnyEvent, on)
	case 1004:
		t.SetMode(ModeReportFocusInOut, on)
	case 1005:
		t.setMouseEncoding(MouseEncodingUTF8, on)
	case 1006:
		t.setMouseEncoding(MouseEncodingSGR, on)
	case 1015:
		t.setMouseEncoding(MouseEncodingURXVT, on)
	case 1048:
		if on {
			t.SaveCursorPosition()
		} else {
			t.RestoreCursorPosition()
		}
	case 1049:
		if on {
			t.SaveCursorPosition()
			t.EnterAlternateScreen()
		} else {
			t.ExitAlternateScreen()
			t.RestoreCursorPosition()
		}
	case 2004:
		t.SetMode(ModeBracketedPaste, on)
	case 2026:
		t.SetMode(ModeSynchronizedOutput, on)
	default:
		t.debugf("unhandled DEC private mode: %d", mode)
	}
}

func (t *Terminal) setMouseTracking(mode MouseTracking, on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if on {
		t.mouseTracking = mode
	} else if t.mouseTracking == mode {
		t.mouseTracking = MouseTrackingNone
	}
}

func (t *Terminal) setMouseEncoding(enc MouseEncoding, on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if on {
		t.mouseEncoding = enc
	} else if t.mouseEncoding == enc {
		t.mouseEncoding = MouseEncodingX10
	}
}

// decModeStatus answers DECRQM: 1 set, 2 reset, 0 unrecognized.
func (t *Terminal) decModeStatus(mode int) int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	set := false
	switch mode {
	case 1:
		set = t.modes&ModeCursorKeys != 0
	case 5:
		set = t.active.HasMode(ModeReverseVideo)
	case 6:
		set = t.active.HasMode(ModeOrigin)
	case 7:
		set = t.active.HasMode(ModeAutoWrap)
	case 9:
		set = t.mouseTracking == MouseTrackingX10
	case 12:
		set = t.modes&ModeBlinkingCursor != 0
	case 25:
		set = t.modes&ModeShowCursor != 0
	case 47, 1047, 1049:
		set = t.active == t.alternate
	case 1000:
		set = t.mouseTracking == MouseTrackingVT200
	case 1002:
		set = t.mouseTracking == MouseTrackingButtonEvent
	case 1003:
		set = t.mouseTracking == MouseTrackingAnyEvent
	case 1004:
		set = t.modes&ModeReportFocusInOut != 0
	case 1005:
		set = t.mouseEncoding == MouseEncodingUTF8
	case 1006:
		set = t.mouseEncoding == MouseEncodingSGR
	case 1015:
		set = t.mouseEncoding == MouseEncodingURXVT
	case 2004:
		set = t.modes&ModeBracketedPaste != 0
	case 2026:
		set = t.modes&ModeSynchronizedOutput != 0
	default:
		return 0
	}

	if set {
		return 1
	}
	return 2
}

// windowOps handles the CSI t window operation subset.
func (t *Terminal) windowOps(params []int) {
	switch csiParamRaw(params, 0, 0) {
	case 14:
		t.TextAreaSizePixels()
	case 16:
		t.CellSizePixels()
	case 18:
		t.TextAreaSizeChars()
	case 22:
		t.PushTitle()
	case 23:
		t.PopTitle()
	default:
		t.debugf("unhandled window op: %v", params)
	}
}

// --- SGR ---

// applySGR interprets an SGR parameter list against the cursor pen.
// Both semicolon (38;5;n) and colon (38:5:n) extended-color forms are accepted.
func (t *Terminal) applySGR(params []int, subParams [][]int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	pen := &t.active.cursor.Pen

	if len(params) == 0 {
		t.resetPen(pen)
		return
	}

	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			t.resetPen(pen)
		case p == 1:
			pen.SetFlag(CellFlagBold)
		case p == 2:
			pen.SetFlag(CellFlagFaint)
		case p == 3:
			pen.SetFlag(CellFlagItalic)
		case p == 4:
			pen.SetFlag(CellFlagUnderline)
		case p == 5 || p == 6:
			pen.SetFlag(CellFlagBlink)
		case p == 7:
			pen.SetFlag(CellFlagInverse)
		case p == 8:
			pen.SetFlag(CellFlagHidden)
		case p == 9:
			pen.SetFlag(CellFlagStrike)
		case p == 21:
			pen.ClearFlag(CellFlagBold)
		case p == 22:
			pen.ClearFlag(CellFlagBold | CellFlagFaint)
		case p == 23:
			pen.ClearFlag(CellFlagItalic)
		case p == 24:
			pen.ClearFlag(CellFlagUnderline)
		case p == 25:
			pen.ClearFlag(CellFlagBlink)
		case p == 27:
			pen.ClearFlag(CellFlagInverse)
		case p == 28:
			pen.ClearFlag(CellFlagHidden)
		case p == 29:
			pen.ClearFlag(CellFlagStrike)
		case p >= 30 && p <= 37:
			pen.Fg = &IndexedColor{Index: p - 30}
		case p == 38:
			if c, consumed := extendedColor(params, subParams, i); c != nil {
				pen.Fg = c
				i += consumed
			}
		case p == 39:
			pen.Fg = &NamedColor{Name: NamedColorForeground}
		case p >= 40 && p <= 47:
			pen.Bg = &IndexedColor{Index: p - 40}
		case p == 48:
			if c, consumed := extendedColor(params, subParams, i); c != nil {
				pen.Bg = c
				i += consumed
			}
		case p == 49:
			pen.Bg = &NamedColor{Name: NamedColorBackground}
		case p == 58:
			if c, consumed := extendedColor(params, subParams, i); c != nil {
				pen.UnderlineColor = c
				i += consumed
			}
		case p == 59:
			pen.UnderlineColor = nil
		case p >= 90 && p <= 97:
			pen.Fg = &IndexedColor{Index: p - 90 + 8}
		case p >= 100 && p <= 107:
			pen.Bg = &IndexedColor{Index: p - 100 + 8}
		default:
			t.debugf("unhandled SGR parameter: %d", p)
		}
	}
}

// resetPen restores default attributes, keeping the hyperlink id: hyperlink
// runs are scoped by OSC 8, not by SGR.
func (t *Terminal) resetPen(pen *Cell) {
	link := pen.Link
	*pen = NewCell()
	pen.Link = link
}

// extendedColor parses the 38/48/58 extended color forms. It returns the
// parsed color and how many extra top-level parameters were consumed (zero
// for the colon form, where everything rides in sub-parameters).
func extendedColor(params []int, subParams [][]int, i int) (c color.Color, consumed int) {
	// Colon form: 38:5:n or 38:2[:colorspace]:r:g:b
	if i < len(subParams) && len(subParams[i]) > 0 {
		sub := subParams[i]
		switch sub[0] {
		case 5:
			if len(sub) >= 2 {
				return &IndexedColor{Index: sub[1] & 0xff}, 0
			}
		case 2:
			rgb := sub[1:]
			if len(rgb) >= 4 {
				// Leading colorspace id present.
				rgb = rgb[1:]
			}
			if len(rgb) >= 3 {
				return rgbColor(rgb[0], rgb[1], rgb[2]), 0
			}
		}
		return nil, 0
	}

	// Semicolon form: 38;5;n or 38;2;r;g;b
	if i+1 >= len(params) {
		return nil, 0
	}
	switch params[i+1] {
	case 5:
		if i+2 < len(params) {
			return &IndexedColor{Index: params[i+2] & 0xff}, 2
		}
	case 2:
		if i+4 < len(params) {
			return rgbColor(params[i+2], params[i+3], params[i+4]), 4
		}
	}
	return nil, 0
}

// rgbColor builds an opaque true-color value from 0-255 channel parameters.
func rgbColor(r, g, b int) color.Color {
	return color.RGBA{
		R: uint8(clamp(r, 0, 255)),
		G: uint8(clamp(g, 0, 255)),
		B: uint8(clamp(b, 0, 255)),
		A: 255,
	}
}

// OscDispatch handles a terminated OSC string.
func (t *Terminal) OscDispatch(command int, hasCommand bool, payload []byte) {
	if !hasCommand {
		t.debugf("OSC string with no command: %q", payload)
		return
	}

	body := string(payload)

	switch command {
	case 0, 2:
		t.SetTitle(body)
	case 1:
		// Icon name: ignored, like most modern terminals.
	case 4:
		t.oscSetPalette(body)
	case 7:
		t.SetWorkingDirectory(body)
	case 8:
		params, uri, _ := strings.Cut(body, ";")
		t.SetHyperlink(uri, params)
	case 10, 11, 12:
		if body == "?" {
			t.ReportColor(command)
		} else {
			t.oscSetDefaultColor(command, body)
		}
	case 52:
		t.oscClipboard(body)
	case 104:
		t.oscResetPalette(body)
	case 110, 111, 112:
		t.oscResetDefaultColor(command)
	default:
		t.debugf("unhandled OSC %d: %q", command, body)
	}
}

// oscSetPalette handles OSC 4: pairs of index;colorspec, with "?" as a query.
func (t *Terminal) oscSetPalette(body string) {
	parts := strings.Split(body, ";")
	for i := 0; i+1 < len(parts); i += 2 {
		index, err := strconv.Atoi(parts[i])
		if err != nil || index < 0 || index > 255 {
			continue
		}
		spec := parts[i+1]
		if spec == "?" {
			c := t.PaletteColor(index)
			t.queueResponseString(fmt.Sprintf("\x1b]4;%d;%s\x07", index, formatColorQuery(c)))
			continue
		}
		if c, ok := parseColorSpec(spec); ok {
			t.SetColor(index, c)
		}
	}
}

// oscResetPalette handles OSC 104: no payload resets every override.
func (t *Terminal) oscResetPalette(body string) {
	if body == "" {
		t.mu.Lock()
		t.colors = make(map[int]color.Color)
		t.mu.Unlock()
		return
	}
	for _, part := range strings.Split(body, ";") {
		if index, err := strconv.Atoi(part); err == nil {
			t.ResetColor(index)
		}
	}
}

// oscSetDefaultColor handles OSC 10/11/12 with a color value.
func (t *Terminal) oscSetDefaultColor(command int, body string) {
	c, ok := parseColorSpec(body)
	if !ok {
		t.debugf("bad OSC %d color spec: %q", command, body)
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	switch command {
	case 10:
		t.fgColor = c
	case 11:
		t.bgColor = c
	case 12:
		t.cursorColor = c
	}
}

// oscResetDefaultColor handles OSC 110/111/112.
func (t *Terminal) oscResetDefaultColor(command int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch command {
	case 110:
		t.fgColor = DefaultForeground
	case 111:
		t.bgColor = DefaultBackground
	case 112:
		t.cursorColor = DefaultCursorColor
	}
}

// oscClipboard handles OSC 52: "<clipboard>;<base64>" with "?" as a read query.
func (t *Terminal) oscClipboard(body string) {
	target, data, ok := strings.Cut(body, ";")
	if !ok {
		return
	}
	clipboard := byte('c')
	if len(target) > 0 {
		clipboard = target[0]
	}

	if data == "?" {
		t.ClipboardLoad(clipboard)
		return
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		t.debugf("bad OSC 52 payload: %q", data)
		return
	}
	t.ClipboardStore(clipboard, decoded)
}

// --- DCS ---

// DcsHook starts DCS string accumulation.
func (t *Terminal) DcsHook(params []int, intermediates []byte, private byte, final byte) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.dcs = dcsState{
		active:        true,
		final:         final,
		intermediates: append([]byte(nil), intermediates...),
		params:        append([]int(nil), params...),
		data:          nil,
	}
}

// DcsPut accumulates one DCS data byte.
func (t *Terminal) DcsPut(b byte) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.dcs.active {
		t.dcs.data = append(t.dcs.data, b)
	}
}

// DcsUnhook terminates the DCS string and interprets it.
func (t *Terminal) DcsUnhook() {
	t.mu.Lock()
	dcs := t.dcs
	t.dcs = dcsState{}
	t.mu.Unlock()

	if !dcs.active {
		return
	}

	if dcs.final == 'q' && len(dcs.intermediates) == 1 && dcs.intermediates[0] == '$' {
		t.decrqss(string(dcs.data))
		return
	}
	t.debugf("unhandled DCS: params %v intermediates %q final %q", dcs.params, dcs.intermediates, dcs.final)
}

// decrqss answers a DECRQSS status-string request.
func (t *Terminal) decrqss(selector string) {
	switch selector {
	case "m":
		t.queueResponseString("\x1bP1$r0m\x1b\\")
	case " q":
		t.mu.RLock()
		cursor := t.active.cursor
		t.mu.RUnlock()

		style := 0
		switch cursor.Style {
		case CursorStyleBlock:
			style = 1
		case CursorStyleUnderline:
			style = 3
		case CursorStyleBar:
			style = 5
		}
		if !cursor.Blinking {
			style++
		}
		t.queueResponseString(fmt.Sprintf("\x1bP1$r%d q\x1b\\", style))
	case "r":
		t.mu.RLock()
		top, bottom := t.active.ScrollRegion()
		t.mu.RUnlock()

		t.queueResponseString(fmt.Sprintf("\x1bP1$r%d;%dr\x1b\\", top+1, bottom+1))
	default:
		t.queueResponseString("\x1bP0$r\x1b\\")
		t.debugf("unknown DECRQSS selector: %q", selector)
	}
}

// SosPmApcDispatch routes a terminated SOS/PM/APC string to its provider.
func (t *Terminal) SosPmApcDispatch(kind byte, payload []byte) {
	data := append([]byte(nil), payload...)
	switch kind {
	case 'X':
		t.StartOfStringReceived(data)
	case '^':
		t.PrivacyMessageReceived(data)
	case '_':
		t.ApplicationCommandReceived(data)
	}
}
