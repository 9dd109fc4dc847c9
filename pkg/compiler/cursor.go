package compiler

import "fmt"

// Cursor walks a fixed token slice for the parser. It never mutates the
// slice, only its own position, so save/restore is a cheap integer copy
// that needs no re-lexing. The parser decides its grammar with one-token
// lookahead and does not call Save or Restore.
type Cursor struct {
	tokens []Token
	pos    int
}

func newCursor(tokens []Token) *Cursor {
	return &Cursor{tokens: tokens}
}

// Peek returns the current token without consuming it. Past the end of the
// stream it keeps returning the final (EOF) token.
func (c *Cursor) Peek() Token {
	if c.pos >= len(c.tokens) {
		return c.tokens[len(c.tokens)-1]
	}
	return c.tokens[c.pos]
}

// PeekAt returns the token offset positions ahead of the current one,
// clamped to the final token.
func (c *Cursor) PeekAt(offset int) Token {
	idx := c.pos + offset
	if idx >= len(c.tokens) {
		idx = len(c.tokens) - 1
	}
	return c.tokens[idx]
}

// Advance consumes and returns the current token.
func (c *Cursor) Advance() Token {
	tok := c.Peek()
	if c.pos < len(c.tokens) {
		c.pos++
	}
	return tok
}

// Save returns a mark that Restore can later rewind to.
func (c *Cursor) Save() int { return c.pos }

// Restore rewinds the cursor to a mark returned by Save.
func (c *Cursor) Restore(mark int) { c.pos = mark }

// Check reports whether the current token has the given kind, without
// consuming it.
func (c *Cursor) Check(kind TokenKind) bool { return c.Peek().Kind == kind }

// Match consumes and returns the current token if it has the given kind.
func (c *Cursor) Match(kind TokenKind) (Token, bool) {
	if c.Check(kind) {
		return c.Advance(), true
	}
	return Token{}, false
}

// Expect consumes the current token if it has the given kind, or produces a
// *Diagnostic citing what was expected (spec.md §4.3).
func (c *Cursor) Expect(kind TokenKind, context string) (Token, error) {
	tok := c.Peek()
	if tok.Kind != kind {
		return Token{}, &Diagnostic{
			Category: CategorySyntax,
			File:     tok.File,
			Line:     tok.Line,
			Column:   tok.Column,
			Message:  fmt.Sprintf("expected %s %s, found %s", kind, context, tok.Kind),
		}
	}
	return c.Advance(), nil
}
