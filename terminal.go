package mochiterm

import (
	"image/color"
	"log"
	"sync"

	"github.com/mochiterm/mochiterm/parser"
)

const (
	// DEFAULT_ROWS is the default number of terminal rows.
	DEFAULT_ROWS = 24
	// DEFAULT_COLS is the default number of terminal columns.
	DEFAULT_COLS = 80
)

// Version is reported by XTVERSION queries.
const Version = "0.3.0"

// Terminal emulates a VT220/xterm-compatible terminal without a display.
// It maintains two screens: primary (with scrollback) and alternate (no
// scrollback). The active screen switches when entering/exiting alternate
// screen mode. All operations are thread-safe via internal locking; feeding
// bytes, resizing, and snapshotting must still be serialized by the host as
// three independent call sites.
type Terminal struct {
	mu sync.RWMutex

	rows int
	cols int

	primary   *Screen
	alternate *Screen
	active    *Screen

	// Terminal-scoped modes; screen-scoped bits live on each Screen.
	modes         TerminalMode
	mouseTracking MouseTracking
	mouseEncoding MouseEncoding

	// Title
	title        string
	titleStack   []string
	titleChanged bool

	// One-shot bell flag, also forwarded to the bell provider.
	bellPending bool

	// Palette overrides (OSC 4) and the configured default colors reported
	// by OSC 10/11/12 queries.
	colors      map[int]color.Color
	fgColor     color.RGBA
	bgColor     color.RGBA
	cursorColor color.RGBA

	// Hyperlink registry; cells store only ids.
	links hyperlinkRegistry

	// Keyboard protocol stack (CSI > u / CSI < u) and modifyOtherKeys.
	keyboardModes   []int
	modifyOtherKeys int

	// Byte-stream parser and in-flight DCS state.
	parser *parser.Parser
	dcs    dcsState

	// Outbound response queue, drained by TakePendingResponses.
	responses [][]byte

	// Selection over the active grid and scrollback.
	selection Selection

	// Scrollback storage, fed only from the primary screen.
	scrollback ScrollbackProvider

	// Synchronized-output first-enable tracking (DECSET 2026).
	syncClearDone bool

	// Pixel geometry for CSI t and cell-size queries.
	windowPixelW int
	windowPixelH int
	cellPixelW   int
	cellPixelH   int

	// Working directory advisory (OSC 7).
	workingDir string

	// Middleware for handler interception.
	middleware *Middleware

	// Providers for external data/actions.
	responseProvider  ResponseProvider
	bellProvider      BellProvider
	titleProvider     TitleProvider
	apcProvider       APCProvider
	pmProvider        PMProvider
	sosProvider       SOSProvider
	clipboardProvider ClipboardProvider
	recordingProvider RecordingProvider

	// Policy toggles.
	osc52Enabled       bool
	preserveOnClear    bool
	eraseScrollbackED3 bool

	// Debug logger for unrecognized sequences. Nil stays silent.
	logger *log.Logger
}

// Option configures a Terminal during construction.
type Option func(*Terminal)

// WithSize sets the terminal dimensions.
// Values <= 0 are replaced with defaults (24x80).
func WithSize(rows, cols int) Option {
	if rows <= 0 {
		rows = DEFAULT_ROWS
	}
	if cols <= 0 {
		cols = DEFAULT_COLS
	}

	return func(t *Terminal) {
		t.rows = rows
		t.cols = cols
	}
}

// WithResponse sets a writer that receives response payloads as they are
// produced, in addition to the internal queue drained by TakePendingResponses.
func WithResponse(p ResponseProvider) Option {
	return func(t *Terminal) {
		t.responseProvider = p
	}
}

// WithBell sets the handler for bell events.
// Defaults to a no-op if not set; the one-shot TakeBell flag is always kept.
func WithBell(p BellProvider) Option {
	return func(t *Terminal) {
		t.bellProvider = p
	}
}

// WithTitle sets the handler for window title changes.
// Defaults to a no-op if not set.
func WithTitle(p TitleProvider) Option {
	return func(t *Terminal) {
		t.titleProvider = p
	}
}

// WithAPC sets the handler for Application Program Command sequences.
// Defaults to a no-op if not set.
func WithAPC(p APCProvider) Option {
	return func(t *Terminal) {
		t.apcProvider = p
	}
}

// WithPM sets the handler for Privacy Message sequences.
// Defaults to a no-op if not set.
func WithPM(p PMProvider) Option {
	return func(t *Terminal) {
		t.pmProvider = p
	}
}

// WithSOS sets the handler for Start of String sequences.
// Defaults to a no-op if not set.
func WithSOS(p SOSProvider) Option {
	return func(t *Terminal) {
		t.sosProvider = p
	}
}

// WithClipboard sets the handler for clipboard operations and enables OSC 52.
// Without this option OSC 52 sequences are ignored.
func WithClipboard(p ClipboardProvider) Option {
	return func(t *Terminal) {
		t.clipboardProvider = p
		t.osc52Enabled = true
	}
}

// WithScrollback sets the storage for scrollback lines.
// Lines scrolled off the top of the primary screen are pushed here.
// Defaults to a bounded in-memory ring.
func WithScrollback(storage ScrollbackProvider) Option {
	return func(t *Terminal) {
		t.scrollback = storage
	}
}

// WithScrollbackCapacity sizes the default scrollback ring.
// Ignored when WithScrollback supplies custom storage.
func WithScrollbackCapacity(lines int) Option {
	return func(t *Terminal) {
		if t.scrollback == nil {
			t.scrollback = NewRingScrollback(lines)
		}
	}
}

// WithMiddleware sets functions to intercept handler calls.
// Each middleware receives the original parameters and a next function to
// call the default implementation.
func WithMiddleware(mw *Middleware) Option {
	return func(t *Terminal) {
		if t.middleware == nil {
			t.middleware = &Middleware{}
		}
		t.middleware.Merge(mw)
	}
}

// WithRecording sets the handler for capturing raw input bytes before parsing.
// Useful for replay, debugging, or regression testing.
func WithRecording(p RecordingProvider) Option {
	return func(t *Terminal) {
		t.recordingProvider = p
	}
}

// WithLogger sets a debug logger for unrecognized sequences.
// Nil (the default) keeps the core silent.
func WithLogger(l *log.Logger) Option {
	return func(t *Terminal) {
		t.logger = l
	}
}

// WithPreserveScreenOnClear controls whether erase-display mode 2 pushes the
// visible primary-screen contents to scrollback before clearing. Default on.
func WithPreserveScreenOnClear(on bool) Option {
	return func(t *Terminal) {
		t.preserveOnClear = on
	}
}

// WithEraseScrollbackOnED3 makes erase-display mode 3 actually clear
// scrollback. Default off: modern TUIs send ED 3 right after ED 2, which
// would discard the history ED 2 just preserved.
func WithEraseScrollbackOnED3(on bool) Option {
	return func(t *Terminal) {
		t.eraseScrollbackED3 = on
	}
}

// New creates a terminal with the given options.
// Defaults to 24x80 with auto-wrap on, cursor visible, and a bounded
// in-memory scrollback ring.
func New(opts ...Option) *Terminal {
	t := &Terminal{
		rows:              DEFAULT_ROWS,
		cols:              DEFAULT_COLS,
		colors:            make(map[int]color.Color),
		fgColor:           DefaultForeground,
		bgColor:           DefaultBackground,
		cursorColor:       DefaultCursorColor,
		links:             newHyperlinkRegistry(),
		bellProvider:      NoopBell{},
		titleProvider:     NoopTitle{},
		apcProvider:       NoopAPC{},
		pmProvider:        NoopPM{},
		sosProvider:       NoopSOS{},
		clipboardProvider: NoopClipboard{},
		recordingProvider: NoopRecording{},
		preserveOnClear:   true,
		cellPixelW:        10,
		cellPixelH:        20,
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.scrollback == nil {
		t.scrollback = NewRingScrollback(DefaultScrollbackLines)
	}

	t.primary = NewScreen(t.rows, t.cols)
	t.alternate = NewScreen(t.rows, t.cols)
	t.active = t.primary

	t.modes = ModeShowCursor | ModeBlinkingCursor
	t.parser = parser.New()

	return t
}

// Rows returns the terminal height in character rows.
func (t *Terminal) Rows() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.rows
}

// Cols returns the terminal width in character columns.
func (t *Terminal) Cols() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cols
}

// Cell returns the cell at (row, col) in the active screen.
// Returns nil if coordinates are out of bounds.
func (t *Terminal) Cell(row, col int) *Cell {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active.Cell(row, col)
}

// CursorPos returns the current cursor position (0-based).
func (t *Terminal) CursorPos() (row, col int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active.cursor.Row, t.active.cursor.Col
}

// CursorVisible returns true if the cursor is currently visible.
func (t *Terminal) CursorVisible() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active.cursor.Visible
}

// CursorStyle returns the current cursor rendering style.
func (t *Terminal) CursorStyle() CursorStyle {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active.cursor.Style
}

// Title returns the current window title string.
func (t *Terminal) Title() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.title
}

// HasMode returns true if the specified mode flag is enabled, checking
// terminal-scoped bits and the active screen's bits.
func (t *Terminal) HasMode(mode TerminalMode) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if mode&screenModes != 0 {
		return t.active.HasMode(mode)
	}
	return t.modes&mode != 0
}

// MouseTrackingMode returns the current mouse tracking mode.
func (t *Terminal) MouseTrackingMode() MouseTracking {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mouseTracking
}

// MouseEncodingMode returns the current mouse report encoding.
func (t *Terminal) MouseEncodingMode() MouseEncoding {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mouseEncoding
}

// IsAlternateScreen returns true if the alternate screen is currently active.
func (t *Terminal) IsAlternateScreen() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active == t.alternate
}

// ScrollRegion returns the current scroll region (0-based, inclusive).
func (t *Terminal) ScrollRegion() (top, bottom int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active.ScrollRegion()
}

// Hyperlink returns the registered hyperlink for id, or nil.
func (t *Terminal) Hyperlink(id uint32) *Hyperlink {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.links.lookup(id)
}

// Process feeds a slice of bytes through the parser, applying the resulting
// actions to the active screen and queueing any response payloads. Ordering
// across calls is preserved; callers must not interleave Process calls.
func (t *Terminal) Process(data []byte) {
	t.recordingProvider.Record(data)
	t.parser.Parse(data, t)
}

// Write implements io.Writer over Process.
func (t *Terminal) Write(data []byte) (int, error) {
	t.Process(data)
	return len(data), nil
}

// WriteString is a convenience method that converts the string to bytes and calls Process.
func (t *Terminal) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}

// Resize changes the terminal dimensions: both screens resize, the scroll
// regions reset to the full screen, cursors clamp into bounds, tab stops
// extend with defaults, and any selection is cleared.
// Invalid dimensions (<= 0) are ignored.
func (t *Terminal) Resize(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.rows = rows
	t.cols = cols
	t.primary.Resize(rows, cols)
	t.alternate.Resize(rows, cols)
	t.selection.Clear()
}

// Reset performs a full terminal reset (RIS): both screens clear, all modes
// return to defaults, scrollback and hyperlinks clear, charsets reset, the
// title clears, and the parser returns to ground state.
func (t *Terminal) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.primary.Reset()
	t.alternate.Reset()
	t.active = t.primary
	t.modes = ModeShowCursor | ModeBlinkingCursor
	t.mouseTracking = MouseTrackingNone
	t.mouseEncoding = MouseEncodingX10
	t.title = ""
	t.titleStack = nil
	t.titleChanged = false
	t.bellPending = false
	t.colors = make(map[int]color.Color)
	t.links.clear()
	t.keyboardModes = nil
	t.modifyOtherKeys = 0
	t.selection.Clear()
	t.scrollback.Clear()
	t.workingDir = ""
	t.syncClearDone = false
	t.dcs = dcsState{}
	t.parser.Reset()
}

// --- Responses and one-shot flags ---

// queueResponse appends a response payload to the outbound queue and, when a
// response provider is configured, forwards it immediately.
func (t *Terminal) queueResponse(data []byte) {
	t.mu.Lock()
	t.responses = append(t.responses, data)
	provider := t.responseProvider
	t.mu.Unlock()

	if provider != nil {
		provider.Write(data)
	}
}

func (t *Terminal) queueResponseString(s string) {
	t.queueResponse([]byte(s))
}

// TakePendingResponses drains the outbound response queue. The host writes
// the returned payloads to the child process in order.
func (t *Terminal) TakePendingResponses() [][]byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := t.responses
	t.responses = nil
	return out
}

// TakeTitleChanged reports and clears the one-shot title-changed flag.
func (t *Terminal) TakeTitleChanged() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	changed := t.titleChanged
	t.titleChanged = false
	return changed
}

// TakeBell reports and clears the one-shot bell flag.
func (t *Terminal) TakeBell() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	pending := t.bellPending
	t.bellPending = false
	return pending
}

// debugf logs an unrecognized sequence when a debug logger is configured.
func (t *Terminal) debugf(format string, args ...any) {
	if t.logger != nil {
		t.logger.Printf(format, args...)
	}
}

// --- Scrollback ---

// pushScrollback routes a line displaced off the top of the scroll region to
// scrollback. Only the primary screen contributes, and only when the scroll
// region starts at the top of the screen.
func (t *Terminal) pushScrollback(line *Line) {
	if line == nil || t.active != t.primary {
		return
	}
	if top, _ := t.primary.ScrollRegion(); top != 0 {
		return
	}
	t.scrollback.Push(*line)
}

// ScrollbackLen returns the number of lines stored in scrollback.
func (t *Terminal) ScrollbackLen() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.scrollback.Len()
}

// ScrollbackLine returns a line from scrollback, where 0 is the oldest line.
// Returns nil if index is out of range.
func (t *Terminal) ScrollbackLine(index int) *Line {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.scrollback.Line(index)
}

// ClearScrollback removes all stored scrollback lines.
func (t *Terminal) ClearScrollback() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scrollback.Clear()
}

// SetMaxScrollback sets the maximum number of scrollback lines to retain.
func (t *Terminal) SetMaxScrollback(max int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scrollback.SetMaxLines(max)
}

// MaxScrollback returns the current maximum scrollback capacity.
func (t *Terminal) MaxScrollback() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.scrollback.MaxLines()
}

// --- Pixel geometry ---

// SetWindowPixelSize records the window size in pixels for CSI 14 t replies.
func (t *Terminal) SetWindowPixelSize(width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.windowPixelW = width
	t.windowPixelH = height
}

// SetCellPixelSize records the character cell size in pixels for CSI 16 t replies.
func (t *Terminal) SetCellPixelSize(width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if width > 0 && height > 0 {
		t.cellPixelW = width
		t.cellPixelH = height
	}
}

// SetDefaultColors configures the colors reported by OSC 10/11/12 queries.
func (t *Terminal) SetDefaultColors(fg, bg, cursor color.RGBA) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fgColor = fg
	t.bgColor = bg
	t.cursorColor = cursor
}

// --- Selection ---

// StartSelection begins a selection at p with the given mode.
// Rows may be negative to address scrollback lines.
func (t *Terminal) StartSelection(p SelectionPoint, mode SelectionMode) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selection.Begin(p, mode)
}

// UpdateSelection extends the in-progress selection to p.
func (t *Terminal) UpdateSelection(p SelectionPoint) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selection.Update(p)
}

// FinishSelection freezes the in-progress selection.
func (t *Terminal) FinishSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selection.Finish()
}

// ClearSelection discards the current selection.
func (t *Terminal) ClearSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selection.Clear()
}

// Selection returns a copy of the current selection state.
func (t *Terminal) Selection() Selection {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.selection
}

// HasSelection returns true if a selection is active or finished.
func (t *Terminal) HasSelection() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return !t.selection.IsEmpty()
}

// IsSelected returns true if the cell at (row, col) is within the selection.
func (t *Terminal) IsSelected(row, col int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.selection.Contains(row, col)
}

// lineAt resolves a selection row to a line: negative rows address
// scrollback (-1 is the most recent scrollback line), non-negative rows the
// active grid. Returns nil when the row does not exist.
func (t *Terminal) lineAt(row int) *Line {
	if row < 0 {
		return t.scrollback.Line(t.scrollback.Len() + row)
	}
	return t.active.Line(row)
}

// SelectedText extracts the text covered by the selection. Wide-character
// spacers are skipped; wrapped lines continue without a newline separator.
func (t *Terminal) SelectedText() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.selection.IsEmpty() {
		return ""
	}
	start, end := t.selection.Ordered()

	var out []byte
	for row := start.Row; row <= end.Row; row++ {
		line := t.lineAt(row)
		if line == nil {
			continue
		}

		startCol, endCol := 0, line.Len()-1
		switch t.selection.Mode {
		case SelectionBlock:
			startCol, endCol = start.Col, end.Col
		case SelectionNormal:
			if row == start.Row {
				startCol = start.Col
			}
			if row == end.Row {
				endCol = end.Col
			}
		}
		startCol = clamp(startCol, 0, line.Len()-1)
		endCol = clamp(endCol, 0, line.Len()-1)
		if startCol > endCol {
			continue
		}

		lastVisible := -1
		segment := make([]byte, 0, endCol-startCol+1)
		for col := startCol; col <= endCol; col++ {
			cell := line.Cell(col)
			if cell == nil || cell.IsWideSpacer() {
				continue
			}
			segment = append(segment, cell.DisplayGrapheme()...)
			if !cell.IsBlank() {
				lastVisible = len(segment)
			}
		}
		if row < end.Row || t.selection.Mode == SelectionLine {
			// Trim trailing blanks on full-width rows.
			if lastVisible >= 0 {
				segment = segment[:lastVisible]
			} else {
				segment = segment[:0]
			}
		}
		out = append(out, segment...)

		if row < end.Row && !line.Wrapped() {
			out = append(out, '\n')
		}
	}
	return string(out)
}

// --- Convenience methods ---

// LineContent returns the text content of a line in the active screen,
// trimming trailing blanks. Returns an empty string if out of bounds.
func (t *Terminal) LineContent(row int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	line := t.active.Line(row)
	if line == nil {
		return ""
	}
	return line.String()
}

// String returns the visible screen content as a newline-separated string.
// Trailing empty lines are omitted. Implements fmt.Stringer.
func (t *Terminal) String() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	lines := make([]string, t.rows)
	lastNonEmpty := -1
	for row := 0; row < t.rows; row++ {
		if line := t.active.Line(row); line != nil {
			lines[row] = line.String()
		}
		if lines[row] != "" {
			lastNonEmpty = row
		}
	}

	if lastNonEmpty < 0 {
		return ""
	}

	result := ""
	for i, line := range lines[:lastNonEmpty+1] {
		if i > 0 {
			result += "\n"
		}
		result += line
	}
	return result
}

// Search finds all occurrences of pattern in the visible screen content.
// Returns the (row, col) of the first character of each match.
func (t *Terminal) Search(pattern string) []SelectionPoint {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if pattern == "" {
		return nil
	}

	var matches []SelectionPoint
	for row := 0; row < t.rows; row++ {
		line := t.active.Line(row)
		if line == nil {
			continue
		}
		matches = append(matches, searchLine(line, pattern, row)...)
	}
	return matches
}

// SearchScrollback finds all occurrences of pattern in scrollback lines.
// Returned rows are negative, where -1 is the most recent scrollback line.
func (t *Terminal) SearchScrollback(pattern string) []SelectionPoint {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if pattern == "" {
		return nil
	}

	var matches []SelectionPoint
	total := t.scrollback.Len()
	for i := 0; i < total; i++ {
		line := t.scrollback.Line(i)
		if line == nil {
			continue
		}
		matches = append(matches, searchLine(line, pattern, i-total)...)
	}
	return matches
}

// searchLine matches pattern against a line's graphemes, reporting cell columns.
func searchLine(line *Line, pattern string, row int) []SelectionPoint {
	patternRunes := []rune(pattern)

	type colRune struct {
		col int
		r   rune
	}
	var cells []colRune
	for col := 0; col < line.Len(); col++ {
		cell := line.Cell(col)
		if cell.IsWideSpacer() {
			continue
		}
		for _, r := range cell.DisplayGrapheme() {
			cells = append(cells, colRune{col: col, r: r})
		}
	}

	var matches []SelectionPoint
	for i := 0; i+len(patternRunes) <= len(cells); i++ {
		found := true
		for j, pr := range patternRunes {
			if cells[i+j].r != pr {
				found = false
				break
			}
		}
		if found {
			matches = append(matches, SelectionPoint{Row: row, Col: cells[i].col})
		}
	}
	return matches
}

// --- Recording ---

// SetRecordingProvider replaces the recording handler at runtime.
func (t *Terminal) SetRecordingProvider(p RecordingProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.recordingProvider = p
}

// RecordedData returns all raw input bytes captured since the last ClearRecording call.
func (t *Terminal) RecordedData() []byte {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.recordingProvider.Data()
}

// ClearRecording discards all captured input data.
func (t *Terminal) ClearRecording() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.recordingProvider.Clear()
}

// SetMiddleware sets the middleware at runtime.
func (t *Terminal) SetMiddleware(mw *Middleware) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.middleware = mw
}

// Middleware returns the current middleware.
func (t *Terminal) Middleware() *Middleware {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.middleware
}
