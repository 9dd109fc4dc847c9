package compiler

import "fmt"

// Parser is recursive-descent over a fixed token stream, with precedence
// climbing for binary expressions (spec.md §4.4). It shares its Types and
// Scopes with the rest of the compilation unit, because struct
// declarations and function signatures must be visible to everything
// parsed after them in the same file.
type Parser struct {
	cur   *Cursor
	types *TypeRegistry
	scope *ScopeStack
	file  string
}

// noStop is the sentinel stop-kind meaning "no stop token" (spec.md §4.4:
// callers pass a stop-token "or a sentinel 'no stop'"). Every ASCII
// punctuation kind is non-zero and every compound kind starts at
// firstCompoundKind; the lexer produces kind 0 only for a NUL byte in the
// source.
const noStop TokenKind = 0

func newParser(cur *Cursor, types *TypeRegistry, scope *ScopeStack, file string) *Parser {
	return &Parser{cur: cur, types: types, scope: scope, file: file}
}

func (p *Parser) errorf(tok Token, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if tok.HasPayload {
		msg = fmt.Sprintf("%s (found %q)", msg, tok.Payload)
	}
	return &Diagnostic{Category: CategorySyntax, File: tok.File, Line: tok.Line, Column: tok.Column, Message: msg}
}

// parseFile is the entry point: struct decls, fn decls, or EOF at file
// level; anything else is a fatal syntax error (spec.md §4.4).
func (p *Parser) parseFile() (*Root, error) {
	root := &Root{}
	for {
		tok := p.cur.Peek()
		switch tok.Kind {
		case EOF:
			return root, nil
		case STRUCT:
			decl, err := p.parseStructDecl()
			if err != nil {
				return nil, err
			}
			root.Decls = append(root.Decls, decl)
		case FN:
			decl, err := p.parseFuncDecl()
			if err != nil {
				return nil, err
			}
			root.Decls = append(root.Decls, decl)
		default:
			return nil, p.errorf(tok, "expected a struct or function declaration, found %s", tok.Kind)
		}
	}
}

// parseStructDecl parses `struct IDENT { member ; member ; ... }` and
// registers the struct in the type registry immediately, so later
// declarations in the same file can reference it (spec.md §4.4).
func (p *Parser) parseStructDecl() (*StructDecl, error) {
	tok, _ := p.cur.Match(STRUCT)
	nameTok, err := p.cur.Expect(IDENT, "after 'struct'")
	if err != nil {
		return nil, err
	}
	name := &Identifier{Token: nameTok, Name: nameTok.Payload}

	if _, err := p.cur.Expect(TokenKind('{'), "to open struct body"); err != nil {
		return nil, err
	}

	var members []VariableDecl
	for {
		if p.cur.Check(TokenKind('}')) {
			break
		}
		if _, ok := p.cur.Match(TokenKind(';')); ok {
			continue
		}
		member, err := p.parseMemberDecl()
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	if len(members) == 0 {
		return nil, p.errorf(p.cur.Peek(), "struct %q must declare at least one member", name.Name)
	}
	if _, err := p.cur.Expect(TokenKind('}'), "to close struct body"); err != nil {
		return nil, err
	}

	decl := &StructDecl{Token: tok, Name: name, Members: members}
	p.types.AddType(name.Name, TypeInfo{Kind: TStruct, Name: name.Name, StructName: name.Name, Source: tok})
	return decl, nil
}

// parseMemberDecl parses one `IDENT : Type` struct member.
func (p *Parser) parseMemberDecl() (VariableDecl, error) {
	nameTok, err := p.cur.Expect(IDENT, "for struct member name")
	if err != nil {
		return VariableDecl{}, err
	}
	if _, err := p.cur.Expect(TokenKind(':'), "after member name"); err != nil {
		return VariableDecl{}, err
	}
	typ, err := p.parseType()
	if err != nil {
		return VariableDecl{}, err
	}
	return VariableDecl{
		Token: nameTok,
		Name:  &Identifier{Token: nameTok, Name: nameTok.Payload},
		Type:  typ,
	}, nil
}

// parseType parses `*Type` (recursive pointer) or a bare identifier
// resolved through the type registry (spec.md §4.4). An unresolved name
// yields T_INVALID; reporting that is the analyzer's job, not the
// parser's.
func (p *Parser) parseType() (TypeInfo, error) {
	if star, ok := p.cur.Match(TokenKind('*')); ok {
		elem, err := p.parseType()
		if err != nil {
			return TypeInfo{}, err
		}
		return PointerTo(elem, star), nil
	}
	nameTok, err := p.cur.Expect(IDENT, "as a type name")
	if err != nil {
		return TypeInfo{}, err
	}
	t := p.types.GetType(nameTok.Payload)
	t.Source = nameTok
	return t, nil
}

// parseFuncDecl parses `fn IDENT ( params ) -> RetType { body }` or the
// prototype form ending in `;` (spec.md §4.4).
func (p *Parser) parseFuncDecl() (*FuncDecl, error) {
	tok, _ := p.cur.Match(FN)
	nameTok, err := p.cur.Expect(IDENT, "after 'fn'")
	if err != nil {
		return nil, err
	}
	name := &Identifier{Token: nameTok, Name: nameTok.Payload}

	if _, err := p.cur.Expect(TokenKind('('), "to open parameter list"); err != nil {
		return nil, err
	}
	var params []Param
	for !p.cur.Check(TokenKind(')')) {
		if len(params) > 0 {
			if _, err := p.cur.Expect(TokenKind(','), "between parameters"); err != nil {
				return nil, err
			}
		}
		if ell, ok := p.cur.Match(ELLIPSIS); ok {
			params = append(params, Param{Variadic: true, Name: &Identifier{Token: ell, Name: "..."}})
			continue
		}
		pNameTok, err := p.cur.Expect(IDENT, "for parameter name")
		if err != nil {
			return nil, err
		}
		if _, err := p.cur.Expect(TokenKind(':'), "after parameter name"); err != nil {
			return nil, err
		}
		pType, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, Param{Name: &Identifier{Token: pNameTok, Name: pNameTok.Payload}, Type: pType})
	}
	if _, err := p.cur.Expect(TokenKind(')'), "to close parameter list"); err != nil {
		return nil, err
	}

	retType := p.types.GetType("void")
	if p.cur.Check(ARROW) {
		p.cur.Advance()
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		retType = t
	}

	fn := &FuncDecl{Token: tok, Name: name, Params: params, ReturnType: retType}

	// The function name is visible to its own body before the body is
	// parsed, enabling recursion (spec.md §4.4).
	p.scope.AddSymbol(Symbol{Kind: SymFunction, Name: name.Name, Source: nameTok, Node: fn, Type: retType})

	if _, ok := p.cur.Match(TokenKind(';')); ok {
		return fn, nil // prototype, no body
	}

	openTok, err := p.cur.Expect(TokenKind('{'), "to open function body")
	if err != nil {
		return nil, err
	}
	p.scope.PushScope(p.file, openTok.Line)
	for _, param := range params {
		if param.Variadic {
			continue
		}
		p.scope.AddSymbol(Symbol{Kind: SymFunctionArg, Name: param.Name.Name, Source: param.Name.Token, Type: param.Type})
	}

	body, err := p.parseBlockBody(openTok)
	if err != nil {
		return nil, err
	}
	fn.Body = body
	return fn, nil
}

// parseBlock parses a `{ ... }` that opens its own scope: the `{` has not
// yet been consumed.
func (p *Parser) parseBlock() (*Block, error) {
	openTok, err := p.cur.Expect(TokenKind('{'), "to open block")
	if err != nil {
		return nil, err
	}
	p.scope.PushScope(p.file, openTok.Line)
	return p.parseBlockBody(openTok)
}

// parseBlockBody parses statements up to and including the matching `}`
// and pops the scope the caller already pushed for openTok.
func (p *Parser) parseBlockBody(openTok Token) (*Block, error) {
	block := &Block{Open: openTok}
	for {
		if closeTok, ok := p.cur.Match(TokenKind('}')); ok {
			block.Close = closeTok
			p.scope.PopScope()
			return block, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
	}
}

// parseStatement dispatches on the first token (spec.md §4.4).
func (p *Parser) parseStatement() (Stmt, error) {
	tok := p.cur.Peek()
	switch tok.Kind {
	case TokenKind('{'):
		return p.parseBlock()
	case IF:
		return p.parseIf()
	case FOR:
		return p.parseFor()
	case ARROW:
		stmt, err := p.parseReturn()
		if err != nil {
			return nil, err
		}
		p.scope.frames[len(p.scope.frames)-1].Terminated = true
		return stmt, nil
	case BREAK:
		p.cur.Advance()
		if _, err := p.cur.Expect(TokenKind(';'), "after 'break'"); err != nil {
			return nil, err
		}
		p.scope.frames[len(p.scope.frames)-1].Terminated = true
		return &BreakStmt{Token: tok}, nil
	case TokenKind('*'), IDENT:
		return p.parseIdentStatement()
	default:
		return nil, p.errorf(tok, "unexpected token at start of statement")
	}
}

// parseIf parses `if EXPR { body }`. The condition expression stops at
// `{` (spec.md §4.4).
func (p *Parser) parseIf() (Stmt, error) {
	tok, _ := p.cur.Match(IF)
	cond, err := p.parseBinary(0, TokenKind('{'), false)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &IfStmt{Token: tok, Cond: cond, Body: body}, nil
}

// parseFor parses `for (init; cond; post) { body }`. This grammar is not
// specified by the source, whose for-parser was a stub; decided here per
// the resolution recorded in the project's design notes.
func (p *Parser) parseFor() (Stmt, error) {
	tok, _ := p.cur.Match(FOR)
	if _, err := p.cur.Expect(TokenKind('('), "after 'for'"); err != nil {
		return nil, err
	}

	var init Stmt
	if !p.cur.Check(TokenKind(';')) {
		s, err := p.parseIdentStatement()
		if err != nil {
			return nil, err
		}
		init = s
	} else {
		p.cur.Advance()
	}

	var cond Expr
	if !p.cur.Check(TokenKind(';')) {
		c, err := p.parseExpr(TokenKind(';'), false)
		if err != nil {
			return nil, err
		}
		cond = c
	} else {
		p.cur.Advance()
	}

	var post Stmt
	if !p.cur.Check(TokenKind(')')) {
		s, err := p.parseIdentStatementNoSemi()
		if err != nil {
			return nil, err
		}
		post = s
	}
	if _, err := p.cur.Expect(TokenKind(')'), "to close for-clause"); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ForStmt{Token: tok, Init: init, Cond: cond, Post: post, Body: body}, nil
}

// parseReturn parses `-> EXPR ;` or the bare `-> ;` form.
func (p *Parser) parseReturn() (Stmt, error) {
	tok, _ := p.cur.Match(ARROW)
	if _, ok := p.cur.Match(TokenKind(';')); ok {
		return &ReturnStmt{Token: tok}, nil
	}
	expr, err := p.parseExpr(TokenKind(';'), false)
	if err != nil {
		return nil, err
	}
	return &ReturnStmt{Token: tok, Expr: expr}, nil
}

// parseIdentStatement parses an lhs expression, dispatches on the operator
// that follows it (assignment, compound assignment, or a `:`/`::`
// declaration), parses the rhs, and consumes the terminating `;`
// (spec.md §4.4).
func (p *Parser) parseIdentStatement() (Stmt, error) {
	stmt, err := p.parseIdentStatementNoSemi()
	if err != nil {
		return nil, err
	}
	if _, err := p.cur.Expect(TokenKind(';'), "to terminate statement"); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseIdentStatementNoSemi is parseIdentStatement without consuming the
// trailing `;`, used by `for`'s init/post clauses.
func (p *Parser) parseIdentStatementNoSemi() (Stmt, error) {
	startTok := p.cur.Peek()
	lhs, err := p.parseExpr(noStop, true)
	if err != nil {
		return nil, err
	}

	tok := p.cur.Peek()
	if isCompoundAssign(tok.Kind) || tok.Kind == TokenKind('=') {
		op := p.cur.Advance()
		rhs, err := p.parseExpr(noStop, false)
		if err != nil {
			return nil, err
		}
		return &Assignment{Token: startTok, Left: lhs, Op: op.Kind, Right: rhs}, nil
	}

	if tok.Kind == TokenKind(':') || tok.Kind == COLON_COLON {
		isConst := tok.Kind == COLON_COLON
		p.cur.Advance()

		declType := TypeInfo{Kind: TDetect, Name: "<detect>"}
		if !p.cur.Check(TokenKind('=')) {
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			declType = t
		}
		if _, err := p.cur.Expect(TokenKind('='), "in declaration"); err != nil {
			return nil, err
		}
		rhs, err := p.parseExpr(noStop, false)
		if err != nil {
			return nil, err
		}

		if ident, ok := lhs.(*Identifier); ok {
			p.scope.AddSymbol(Symbol{Kind: SymVariable, Name: ident.Name, Source: ident.Token, Type: declType})
		}
		return &Assignment{Token: startTok, Left: lhs, Declare: true, Const: isConst, DeclaredType: declType, Right: rhs}, nil
	}

	return nil, p.errorf(tok, "expected an assignment or declaration operator")
}

func isCompoundAssign(k TokenKind) bool {
	switch k {
	case PLUS_EQ, MINUS_EQ, STAR_EQ, SLASH_EQ, PERCENT_EQ, AND_EQ, CARET_EQ, PIPE_EQ, SHL_EQ, SHR_EQ:
		return true
	}
	return false
}

//  Expressions

// binaryBP holds the binary-operator rows of the lhs/rhs binding-power
// table from spec.md §4.4. Each operator requests rhs_bp = lhs_bp - 1;
// because parseBinary keeps taking operators whose lhs_bp >= minBP, a chain
// of equal-precedence operators groups to the right (1 - 2 - 3 parses as
// 1 - (2 - 3)).
var binaryBP = map[TokenKind][2]int{
	TokenKind('*'): {33, 32}, TokenKind('/'): {33, 32}, TokenKind('%'): {33, 32},
	TokenKind('+'): {31, 30}, TokenKind('-'): {31, 30},
	SHL: {29, 28}, SHR: {29, 28},
	TokenKind('<'): {27, 26}, TokenKind('>'): {27, 26}, LE: {27, 26}, GE: {27, 26},
	EQ_EQ: {25, 24}, NOT_EQ: {25, 24},
	TokenKind('&'): {23, 22},
	TokenKind('^'): {21, 20},
	TokenKind('|'): {19, 18},
	AND_AND:        {17, 16},
	OR_OR:          {15, 14},
}

// parseExpr is the expression entry point. stop is the token that ends the
// expression (consumed if it is not noStop); lhs restricts the grammar to
// forms valid on the left of an assignment (spec.md §4.4 "LHS context").
func (p *Parser) parseExpr(stop TokenKind, lhs bool) (Expr, error) {
	expr, err := p.parseBinary(0, stop, lhs)
	if err != nil {
		return nil, err
	}
	if stop != noStop {
		if _, err := p.cur.Expect(stop, "to end expression"); err != nil {
			return nil, err
		}
	}
	return expr, nil
}

// parseBinary is the precedence-climbing loop (spec.md §4.4). stop is
// threaded all the way down to parseAtom's postfix loop so that, for
// example, an if-condition's stop token `{` is recognized before it is
// mistaken for a struct initializer (original_source/src/Parser.cpp's
// parse_binary_expression checks "current.type == stop_at" before
// consulting the precedence table, for the same reason). An lhs context
// takes no binary operator.
func (p *Parser) parseBinary(minBP int, stop TokenKind, lhs bool) (Expr, error) {
	left, err := p.parseUnary(stop, lhs)
	if err != nil {
		return nil, err
	}
	for {
		tok := p.cur.Peek()
		if tok.Kind == stop {
			return left, nil
		}
		bp, ok := binaryBP[tok.Kind]
		if lhs || !ok || bp[0] < minBP {
			return left, nil
		}
		p.cur.Advance()
		right, err := p.parseBinary(bp[1], stop, false)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Token: tok, Op: tok.Kind, Left: left, Right: right}
	}
}

// parseUnary handles the prefix tier: `#T` cast, `*`, `@`, unary `-`, `!`,
// and prefix `++`/`--`. An lhs context accepts only `*` (spec.md §4.4).
func (p *Parser) parseUnary(stop TokenKind, lhs bool) (Expr, error) {
	tok := p.cur.Peek()

	if tok.Kind == TokenKind('#') && !lhs {
		p.cur.Advance()
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		operand, err := p.parseUnary(stop, false)
		if err != nil {
			return nil, err
		}
		return &Cast{Token: tok, Type: typ, Expr: operand}, nil
	}

	if tok.Kind == TokenKind('*') {
		p.cur.Advance()
		operand, err := p.parseUnary(stop, lhs)
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Token: tok, Op: tok.Kind, Operand: operand}, nil
	}

	if lhs {
		return p.parseAtom(stop, lhs)
	}

	switch tok.Kind {
	case TokenKind('@'), TokenKind('-'), TokenKind('!'), INC, DEC:
		p.cur.Advance()
		operand, err := p.parseUnary(stop, false)
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Token: tok, Op: tok.Kind, Operand: operand}, nil
	}

	return p.parseAtom(stop, lhs)
}

// parseAtom parses an operand followed by zero or more postfix
// constructs. An lhs context rejects struct-init `{...}` (spec.md §4.4).
// The top of the postfix loop checks for stop before dispatching on the
// current token, exactly as original_source/src/Parser.cpp's
// parse_atom_expression does — otherwise a stop token that happens to
// double as a postfix opener (`{` for struct-init, the only such case in
// this grammar) would be misread as that construct instead of ending the
// expression (spec.md §4.4: an if-condition "stops at `{`").
func (p *Parser) parseAtom(stop TokenKind, lhs bool) (Expr, error) {
	expr, err := p.parseOperand(lhs)
	if err != nil {
		return nil, err
	}

	for {
		tok := p.cur.Peek()
		if tok.Kind == stop {
			return expr, nil
		}
		switch tok.Kind {
		case TokenKind('('):
			p.cur.Advance()
			args, err := p.parseArgList(TokenKind(')'))
			if err != nil {
				return nil, err
			}
			expr = &FuncCall{Token: tok, Operand: expr, Args: args}
		case TokenKind('{'):
			if lhs {
				return expr, nil
			}
			ident, ok := expr.(*Identifier)
			if !ok {
				return nil, p.errorf(tok, "struct initializer must follow a type name")
			}
			p.cur.Advance()
			args, err := p.parseArgList(TokenKind('}'))
			if err != nil {
				return nil, err
			}
			expr = &StructInit{Token: tok, Operand: ident, Args: args}
		case TokenKind('['):
			p.cur.Advance()
			idx, err := p.parseExpr(TokenKind(']'), false)
			if err != nil {
				return nil, err
			}
			expr = &IndexExpr{Token: tok, Operand: expr, Index: idx}
		case TokenKind('.'):
			p.cur.Advance()
			fieldTok, err := p.cur.Expect(IDENT, "after '.'")
			if err != nil {
				return nil, err
			}
			expr = &Selector{Token: tok, Operand: expr, Field: &Identifier{Token: fieldTok, Name: fieldTok.Payload}}
		case INC, DEC:
			p.cur.Advance()
			expr = &PostfixExpr{Token: tok, Op: tok.Kind, Operand: expr}
		default:
			return expr, nil
		}
	}
}

// parseArgList parses a comma-separated expression list up to close. No
// trailing comma is permitted (spec.md §9 open question, resolved against
// the source's parseCallArgs behavior).
func (p *Parser) parseArgList(close TokenKind) ([]Expr, error) {
	var args []Expr
	if p.cur.Check(close) {
		p.cur.Advance()
		return args, nil
	}
	for {
		arg, err := p.parseExpr(noStop, false)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if _, ok := p.cur.Match(TokenKind(',')); ok {
			continue
		}
		if _, err := p.cur.Expect(close, "to close argument list"); err != nil {
			return nil, err
		}
		return args, nil
	}
}

// parseOperand parses an identifier, a number/string literal, or a
// parenthesized expression. An lhs context rejects literals and parens
// (spec.md §4.4).
func (p *Parser) parseOperand(lhs bool) (Expr, error) {
	tok := p.cur.Peek()
	switch tok.Kind {
	case IDENT:
		p.cur.Advance()
		return &Identifier{Token: tok, Name: tok.Payload}, nil
	case NUMBER:
		if lhs {
			return nil, p.errorf(tok, "a number literal is not valid on the left of an assignment")
		}
		p.cur.Advance()
		return &NumberLiteral{Token: tok, Payload: tok.Payload}, nil
	case CONST_STR:
		if lhs {
			return nil, p.errorf(tok, "a string literal is not valid on the left of an assignment")
		}
		p.cur.Advance()
		return &StringLiteral{Token: tok, Value: tok.Payload}, nil
	case CHAR:
		if lhs {
			return nil, p.errorf(tok, "a character literal is not valid on the left of an assignment")
		}
		p.cur.Advance()
		var v byte
		if len(tok.Payload) > 0 {
			v = tok.Payload[0]
		}
		return &CharLiteral{Token: tok, Value: v}, nil
	case TokenKind('('):
		if lhs {
			return nil, p.errorf(tok, "a parenthesized expression is not valid on the left of an assignment")
		}
		p.cur.Advance()
		expr, err := p.parseExpr(TokenKind(')'), false)
		if err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, p.errorf(tok, "expected an expression")
	}
}
