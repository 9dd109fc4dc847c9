package compiler

// CompileUnit owns every piece of mutable state a single file's
// compilation shares across stages: the loaded source, its tokens, and
// the type registry and scope stack the parser populates as a side
// effect (spec.md §5: "Shared state within a compilation unit"). There is
// exactly one of these per file and it is never touched concurrently.
type CompileUnit struct {
	Source *SourceFile
	Tokens []Token
	Types  *TypeRegistry
	Scopes *ScopeStack
}

// NewCompileUnit loads path and lexes it, leaving Types and Scopes ready
// for Parse. Lexing happens here rather than lazily inside Parse because
// spec.md's dependency order places the Lexer strictly before the Parser:
// a caller that only wants tokens (e.g. a "-dump-tokens" flag) can stop
// after this call.
//
// A failure to read path has no SourceFile to render a diagnostic
// against, so it is returned as a plain error; a lex failure always comes
// with one, since loading succeeded first.
func NewCompileUnit(path string) (*CompileUnit, error) {
	src, err := LoadSourceFile(path)
	if err != nil {
		return nil, err
	}
	cu := &CompileUnit{
		Source: src,
		Types:  NewTypeRegistry(),
		Scopes: NewScopeStack(),
	}
	tokens, err := Lex(src)
	if err != nil {
		return cu, err
	}
	cu.Tokens = tokens
	return cu, nil
}

// Parse drives the parser over cu's tokens, pushing and popping the
// file-level global scope around it (spec.md §4.4). It is a fatal
// internal error for the scope stack to be non-empty when parsing
// finishes; Parse reports that itself as a Semantic diagnostic rather
// than letting it silently pass to the caller (spec.md §7: "scope stack
// non-empty at EOF" is one of the parser's own semantic errors).
func Parse(cu *CompileUnit) (*Root, error) {
	cu.Scopes.PushScope(cu.Source.Path, 1)
	p := newParser(newCursor(cu.Tokens), cu.Types, cu.Scopes, cu.Source.Path)

	root, err := p.parseFile()
	if err != nil {
		return nil, err
	}

	if cu.Scopes.Depth() != 1 {
		last := cu.Tokens[len(cu.Tokens)-1]
		return nil, &Diagnostic{
			Category: CategorySemantic,
			File:     cu.Source.Path,
			Line:     last.Line,
			Column:   last.Column,
			Message:  "scope stack is not balanced at end of file",
		}
	}
	cu.Scopes.PopScope()
	return root, nil
}
