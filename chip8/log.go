package chip8

// DiagLog is the append-only diagnostics log the machine writes decode
// and dispatch failures to. The host may display it, poll it for new
// lines, or ignore it entirely; nothing in the machine reads it back.
type DiagLog struct {
	// lines contains each line of logged text.
	lines []string
}

// NewDiagLog creates an empty diagnostics log.
func NewDiagLog() *DiagLog {
	return &DiagLog{
		lines: make([]string, 0, 100),
	}
}

// Append adds a new line to the log.
func (l *DiagLog) Append(s string) {
	l.lines = append(l.lines, s)
}

// Len returns how many lines have been logged so far.
func (l *DiagLog) Len() int {
	return len(l.lines)
}

// Lines returns all logged lines. The slice is shared with the log;
// callers must not modify it.
func (l *DiagLog) Lines() []string {
	return l.lines
}

// Tail returns up to the last n logged lines.
func (l *DiagLog) Tail(n int) []string {
	start := len(l.lines) - n

	// don't scroll past the beginning
	if start < 0 {
		start = 0
	}

	return l.lines[start:]
}
