package compiler

// keywords maps every reserved word to its TokenKind. Compiler directives
// and multi-character punctuation have their own tables below (directives,
// punctuation). Grounded on original_source/src/Lexer.cpp's keyword_table,
// populated in initialize_compiler().
var keywords = map[string]TokenKind{
	"fn":       FN,
	"extern":   EXTERN,
	"struct":   STRUCT,
	"enum":     ENUM,
	"import":   IMPORT,
	"cast":     CAST,
	"if":       IF,
	"for":      FOR,
	"switch":   SWITCH,
	"case":     CASE,
	"as":       AS,
	"break":    BREAK,
	"else":     ELSE,
	"defer":    DEFER,
	"overload": OVERLOAD,
}

// directives maps every "$"-prefixed compiler directive lexeme (including
// the leading "$") to its TokenKind. An unrecognized directive is a fatal
// lex error (spec.md §4.2).
var directives = map[string]TokenKind{
	"$run":        DIR_RUN,
	"$interp":     DIR_INTERP,
	"$size":       DIR_SIZE,
	"$default":    DIR_DEFAULT,
	"$union":      DIR_UNION,
	"$intrinsic":  DIR_INTRINSIC,
	"$call":       DIR_CALL,
	"$is_defined": DIR_IS_DEFINED,
	"$end_is":     DIR_END_IS,
}

// punctuation maps every multi-character punctuation lexeme the lexer's
// longest-match scanner can resolve. The scanner tries progressively
// shorter prefixes of a greedily consumed run, longest first, so this only
// needs to answer exact-match lookups. Grounded on the same keyword_table
// entries in Lexer.cpp (shput for "->", "--", "++", "||", "==", ...).
var punctuation = map[string]TokenKind{
	"<<=": SHL_EQ,
	">>=": SHR_EQ,
	"...": ELLIPSIS,
	"->":  ARROW,
	"--":  DEC,
	"++":  INC,
	"||":  OR_OR,
	"==":  EQ_EQ,
	"!=":  NOT_EQ,
	"&&":  AND_AND,
	"::":  COLON_COLON,
	"<<":  SHL,
	">>":  SHR,
	">=":  GE,
	"<=":  LE,
	"+=":  PLUS_EQ,
	"-=":  MINUS_EQ,
	"*=":  STAR_EQ,
	"/=":  SLASH_EQ,
	"%=":  PERCENT_EQ,
	"&=":  AND_EQ,
	"^=":  CARET_EQ,
	"|=":  PIPE_EQ,
}
