package compiler

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Category classifies a Diagnostic for the "categorized prefix" spec.md §6
// requires in the rendered diagnostic.
type Category string

const (
	CategoryLex      Category = "Lex"
	CategorySyntax   Category = "Syntax"
	CategorySemantic Category = "Semantic"
)

// Diagnostic is a single fatal compiler error: its category, its source
// position, and a human-readable message. Every error the lexer and parser
// raise is a *Diagnostic (spec.md §7: "all errors in the core are fatal").
type Diagnostic struct {
	Category Category
	File     string
	Line     int
	Column   int
	Message  string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s error: %s", d.File, d.Line, d.Column, d.Category, d.Message)
}

// Sink renders and reports fatal diagnostics. It is the one collaborator
// spec.md §6 describes as external to the core: the lexer and parser never
// call it themselves (they return *Diagnostic as an error instead, per
// spec.md §9's "no justification for process-wide mutability"), leaving the
// caller — cmd/forgec, in this module — to decide whether to terminate the
// process or propagate the error.
//
// Grounded on original_source/src/Errors.cpp's raise_* family: a three-line
// excerpt (two lines of prior context plus the error line) followed by a
// caret line whose leading whitespace mirrors the error line's indentation
// (tabs stay tabs, everything else becomes spaces) up to the error column.
type Sink struct {
	out   io.Writer
	color bool
}

// NewSink builds a Sink writing to w. Color is enabled only when w is a
// terminal, checked with golang.org/x/term the way phroun-pawscript's
// terminal.go decides whether to engage its own TTY-only behavior.
func NewSink(w io.Writer) *Sink {
	color := false
	if f, ok := w.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	return &Sink{out: w, color: color}
}

// Fatal renders d against src's text and terminates the process with a
// non-zero exit status. It never returns (spec.md §7: "no error recovery
// — the first fatal diagnostic ends compilation").
func (s *Sink) Fatal(d *Diagnostic, src *SourceFile) {
	fmt.Fprint(s.out, s.Render(d, src))
	os.Exit(1)
}

// Render formats d the way Fatal would print it, without exiting. Exposed
// so tests and tooling that want to capture the formatted diagnostic
// without killing the test process can call it directly.
func (s *Sink) Render(d *Diagnostic, src *SourceFile) string {
	prefix := string(d.Category)
	if s.color {
		prefix = "\033[1;31m" + prefix + "\033[0m"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d:%d:\n\t%s error: %s\n\n", d.File, d.Line, d.Column, prefix, d.Message)
	b.WriteString(sourceExcerpt(src, d.Line, d.Column))
	b.WriteByte('\n')
	return b.String()
}

// sourceExcerpt returns up to two lines of context plus the error line,
// followed by a caret line marking column. Column is 1-indexed.
func sourceExcerpt(src *SourceFile, line, column int) string {
	if src == nil {
		return "<source unavailable>"
	}
	lines := strings.Split(src.Text, "\n")
	idx := line - 1
	if idx < 0 || idx >= len(lines) {
		return "<source unavailable>"
	}

	start := idx - 2
	if start < 0 {
		start = 0
	}
	var b strings.Builder
	for i := start; i <= idx; i++ {
		b.WriteString(lines[i])
		b.WriteByte('\n')
	}

	errLine := lines[idx]
	caret := make([]byte, 0, column)
	for i := 0; i < column-1 && i < len(errLine); i++ {
		if errLine[i] == '\t' {
			caret = append(caret, '\t')
		} else {
			caret = append(caret, ' ')
		}
	}
	for i := len(caret); i < column-1; i++ {
		caret = append(caret, ' ')
	}
	caret = append(caret, '^', '^', '^')
	b.Write(caret)
	return b.String()
}
