// Package mochiterm implements the core of a VT/xterm-compatible terminal
// emulator: the escape-sequence parser, the screen model, and the performer
// that applies parsed actions to the model.
//
// The core is a pure, deterministic state machine. It turns an arbitrary byte
// stream from a child process into a well-defined screen state plus an
// outbound response stream. It never fails on malformed input: bad UTF-8
// becomes U+FFFD, out-of-range parameters clamp, and oversized control
// strings are truncated.
//
// # Quick Start
//
// Create a terminal and feed it bytes:
//
//	term := mochiterm.New(mochiterm.WithSize(24, 80))
//	term.Process([]byte("\x1b[31mHello \x1b[32mWorld\x1b[0m!"))
//	fmt.Println(term.String()) // "Hello World!"
//
// # Architecture
//
// Three cooperating components, leaf first:
//
//   - [parser.Parser]: a closed state machine turning bytes into actions
//     (print, execute, CSI/ESC/OSC/DCS dispatch). It carries only parsing
//     state and knows nothing about screens.
//   - [Screen]: the grid, cursor, scroll region, tab stops, charsets, and
//     screen-scoped modes. Exposes total primitive operations.
//   - [Terminal]: the aggregate and performer. It owns a primary and an
//     alternate [Screen], scrollback, selection, hyperlinks, the title, and
//     the outbound response queue, and it maps parsed actions onto Screen
//     primitives.
//
// # Processing and responses
//
// Terminal implements [io.Writer], so child process output can be piped in
// directly:
//
//	cmd := exec.Command("ls", "--color")
//	cmd.Stdout = term
//	cmd.Run()
//
// Some sequences (cursor position report, device attributes, DECRQSS) make
// the terminal answer back. Responses accumulate in a queue the host drains
// after each batch of input:
//
//	for _, resp := range term.TakePendingResponses() {
//	    ptyWriter.Write(resp)
//	}
//
// # Dual screens and scrollback
//
// The primary screen feeds lines scrolled off its top into a bounded
// scrollback ring; the alternate screen (vim, less, htop) never does. The
// alternate screen is cleared every time it is entered.
//
//	if term.IsAlternateScreen() {
//	    // Full-screen app is running
//	}
//
// Scrollback storage is pluggable through [ScrollbackProvider]; the default
// is an in-memory [RingScrollback] holding 10000 lines.
//
// # Snapshots and selection
//
// Renderers read the screen through point-in-time snapshots rather than
// reaching into live state:
//
//	snap := term.Snapshot(mochiterm.SnapshotDetailStyled)
//
// Selection works over the visible grid and scrollback (negative rows
// address scrollback lines) in normal, line, and block modes:
//
//	term.StartSelection(mochiterm.SelectionPoint{Row: 0, Col: 0}, mochiterm.SelectionNormal)
//	term.UpdateSelection(mochiterm.SelectionPoint{Row: 0, Col: 4})
//	term.FinishSelection()
//	text := term.SelectedText()
//
// # Concurrency
//
// A Terminal is internally locked, but Process calls must not be interleaved:
// the host serializes byte processing, resize, and input events, while
// snapshot reads may come from a renderer thread between batches.
package mochiterm
