package compiler

import "fmt"

// TokenKind identifies the category of a lexed token.
//
// Single-character operators and punctuation reuse their ASCII code as the
// kind (so '+' is TokenKind('+'), '{' is TokenKind('{'), and so on). Every
// compound operator, keyword, and compiler directive is given a distinct
// value at or above firstCompoundKind, a value well above the ASCII range,
// so no single-byte token can ever collide with a multi-character one —
// spec.md §9 flags this as something an implementer must confirm; here it
// holds by construction rather than by convention.
type TokenKind int

const firstCompoundKind TokenKind = 256

const (
	EOF TokenKind = firstCompoundKind + iota

	// Primary kinds.
	IDENT     // identifier
	CONST_STR // "..."
	NUMBER    // decimal or hex integer literal, or a float literal
	CHAR      // 'c'

	// Compound operators.
	ARROW       // ->
	DEC         // --
	INC         // ++
	OR_OR       // ||
	EQ_EQ       // ==
	NOT_EQ      // !=
	AND_AND     // &&
	COLON_COLON // ::
	SHL         // <<
	SHR         // >>
	GE          // >=
	LE          // <=
	PLUS_EQ     // +=
	MINUS_EQ    // -=
	STAR_EQ     // *=
	SLASH_EQ    // /=
	PERCENT_EQ  // %=
	AND_EQ      // &=
	CARET_EQ    // ^=
	PIPE_EQ     // |=
	SHL_EQ      // <<=
	SHR_EQ      // >>=
	ELLIPSIS    // ...

	// Keywords.
	FN
	EXTERN
	STRUCT
	ENUM
	IMPORT
	CAST
	IF
	FOR
	SWITCH
	CASE
	AS
	BREAK
	ELSE
	DEFER
	OVERLOAD

	// Compiler directives, each spelled "$" + identifier in source.
	DIR_RUN
	DIR_INTERP
	DIR_SIZE
	DIR_DEFAULT
	DIR_UNION
	DIR_INTRINSIC
	DIR_CALL
	DIR_IS_DEFINED
	DIR_END_IS
)

var tokenKindNames = map[TokenKind]string{
	EOF: "eof", IDENT: "identifier", CONST_STR: "const_str", NUMBER: "number", CHAR: "char",
	ARROW: "->", DEC: "--", INC: "++", OR_OR: "||", EQ_EQ: "==", NOT_EQ: "!=", AND_AND: "&&",
	COLON_COLON: "::", SHL: "<<", SHR: ">>", GE: ">=", LE: "<=", PLUS_EQ: "+=", MINUS_EQ: "-=",
	STAR_EQ: "*=", SLASH_EQ: "/=", PERCENT_EQ: "%=", AND_EQ: "&=", CARET_EQ: "^=", PIPE_EQ: "|=",
	SHL_EQ: "<<=", SHR_EQ: ">>=", ELLIPSIS: "...",
	FN: "fn", EXTERN: "extern", STRUCT: "struct", ENUM: "enum", IMPORT: "import", CAST: "cast",
	IF: "if", FOR: "for", SWITCH: "switch", CASE: "case", AS: "as", BREAK: "break", ELSE: "else",
	DEFER: "defer", OVERLOAD: "overload",
	DIR_RUN: "$run", DIR_INTERP: "$interp", DIR_SIZE: "$size", DIR_DEFAULT: "$default",
	DIR_UNION: "$union", DIR_INTRINSIC: "$intrinsic", DIR_CALL: "$call",
	DIR_IS_DEFINED: "$is_defined", DIR_END_IS: "$end_is",
}

// String renders a TokenKind for diagnostics. Single-character kinds render
// as the literal character; everything else looks itself up by name.
func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	if k >= 0 && k < firstCompoundKind {
		return fmt.Sprintf("%q", rune(k))
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is a single positioned lexical unit produced by the Lexer.
//
// Invariant: (Line, Column) always points at the first byte of the token's
// lexeme in the source it was lexed from.
type Token struct {
	Kind       TokenKind
	File       string
	Line       int // 1-indexed
	Column     int // 1-indexed
	Payload    string
	HasPayload bool
}

func (t Token) String() string {
	if t.HasPayload {
		return fmt.Sprintf("%s(%q) %s:%d:%d", t.Kind, t.Payload, t.File, t.Line, t.Column)
	}
	return fmt.Sprintf("%s %s:%d:%d", t.Kind, t.File, t.Line, t.Column)
}
