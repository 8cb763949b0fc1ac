package poet

import (
	"io"
	"strings"
	"unicode/utf8"
)

// LineWrapper emits text, taking the last recorded wrapping space when a line would exceed the column limit
type LineWrapper struct {
	out         io.Writer
	indent      string
	columnLimit int
	closed      bool
	err         error

	// column is the current rune position on the physical line
	column int
	// buffer holds text appended after a pending wrapping space
	buffer strings.Builder
	// pending is set while a wrapping space is waiting for a decision
	pending     bool
	indentLevel int
}

// NewLineWrapper creates a wrapper writing to out
func NewLineWrapper(out io.Writer, indent string, columnLimit int) *LineWrapper {
	return &LineWrapper{out: out, indent: indent, columnLimit: columnLimit}
}

// Append emits s, breaking at the pending wrapping space when s does not fit
func (l *LineWrapper) Append(s string) error {
	if l.closed {
		return renderError("line wrapper is closed")
	}
	if l.err != nil {
		return l.err
	}
	if l.pending {
		nextNewline := strings.IndexByte(s, '\n')
		if nextNewline == -1 && l.column+utf8.RuneCountInString(s) <= l.columnLimit {
			l.buffer.WriteString(s)
			l.column += utf8.RuneCountInString(s)
			return nil
		}
		// wrap if appending would overflow the current line
		wrap := nextNewline == -1 || l.column+utf8.RuneCountInString(s[:nextNewline]) > l.columnLimit
		l.flush(wrap)
	}
	l.write(s)
	if lastNewline := strings.LastIndexByte(s, '\n'); lastNewline != -1 {
		l.column = utf8.RuneCountInString(s[lastNewline+1:])
	} else {
		l.column += utf8.RuneCountInString(s)
	}
	return l.err
}

// WrappingSpace records a space which becomes a line break indented by indentLevel if needed
func (l *LineWrapper) WrappingSpace(indentLevel int) error {
	if l.closed {
		return renderError("line wrapper is closed")
	}
	if l.err != nil {
		return l.err
	}
	if l.pending {
		if l.buffer.Len() == 0 {
			l.indentLevel = indentLevel
			return nil
		}
		l.flush(false)
	}
	l.column++
	l.pending = true
	l.indentLevel = indentLevel
	return l.err
}

// Close flushes buffered text without a trailing break
func (l *LineWrapper) Close() error {
	if l.closed {
		return l.err
	}
	if l.pending {
		l.flush(false)
	}
	l.closed = true
	return l.err
}

func (l *LineWrapper) flush(wrap bool) {
	if wrap {
		l.write("\n")
		for i := 0; i < l.indentLevel; i++ {
			l.write(l.indent)
		}
		l.column = l.indentLevel*utf8.RuneCountInString(l.indent) + utf8.RuneCountInString(l.buffer.String())
	} else {
		l.write(" ")
	}
	l.write(l.buffer.String())
	l.buffer.Reset()
	l.pending = false
	l.indentLevel = -1
}

func (l *LineWrapper) write(s string) {
	if l.err != nil || s == "" {
		return
	}
	if _, err := io.WriteString(l.out, s); err != nil {
		l.err = err
	}
}
