package compiler

import (
	"os"
	"path/filepath"
)

// SourceFile owns the lifetime of one compilation unit's source bytes.
// Tokens and diagnostics reference it by file path and 1-indexed
// line/column rather than holding a pointer into the buffer, so they do
// not keep the text alive; a *SourceFile reference (such as the
// CompileUnit's) does, and Go's garbage collector, not an arena, frees it
// once no such reference remains (spec.md §5's arena note; see DESIGN.md
// Open Question OQ-1).
type SourceFile struct {
	Path string // resolved to an absolute path, for diagnostics
	Text string // file contents; no trailing NUL is needed in Go
}

// LoadSourceFile reads path into a SourceFile, resolving it to an absolute
// path the way the teacher's driver resolves its input path before handing
// it to the lexer. A read failure is returned as a plain error, not a
// *Diagnostic, since there is no source text to render an excerpt from;
// cmd/forgec prints it to stderr and exits non-zero (spec.md §4.1).
func LoadSourceFile(path string) (*SourceFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &SourceFile{Path: abs, Text: string(data)}, nil
}
