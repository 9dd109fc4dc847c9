package compiler

import (
	"testing"
)

func parseSource(t *testing.T, src string) *CompileUnit {
	t.Helper()
	tokens, err := Lex(&SourceFile{Path: "test.fg", Text: src})
	if err != nil {
		t.Fatalf("Lex(%q) returned error: %v", src, err)
	}
	cu := &CompileUnit{
		Source: &SourceFile{Path: "test.fg", Text: src},
		Tokens: tokens,
		Types:  NewTypeRegistry(),
		Scopes: NewScopeStack(),
	}
	return cu
}

func mustParse(t *testing.T, src string) (*Root, *CompileUnit) {
	t.Helper()
	cu := parseSource(t, src)
	root, err := Parse(cu)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", src, err)
	}
	return root, cu
}

// Scenario 1 (spec end-to-end scenario 1).
func TestParseSimpleFunction(t *testing.T) {
	root, _ := mustParse(t, "fn main() -> i32 { -> 0; }")
	if len(root.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(root.Decls))
	}
	fn, ok := root.Decls[0].(*FuncDecl)
	if !ok {
		t.Fatalf("decl is %T, want *FuncDecl", root.Decls[0])
	}
	if fn.Name.Name != "main" {
		t.Errorf("function name = %q, want main", fn.Name.Name)
	}
	if len(fn.Params) != 0 {
		t.Errorf("expected 0 params, got %d", len(fn.Params))
	}
	if fn.ReturnType.Name != "i32" {
		t.Errorf("return type = %q, want i32", fn.ReturnType.Name)
	}
	if len(fn.Body.Stmts) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(fn.Body.Stmts))
	}
	ret, ok := fn.Body.Stmts[0].(*ReturnStmt)
	if !ok {
		t.Fatalf("statement is %T, want *ReturnStmt", fn.Body.Stmts[0])
	}
	num, ok := ret.Expr.(*NumberLiteral)
	if !ok || num.Payload != "0" {
		t.Fatalf("return expr = %v, want number literal 0", ret.Expr)
	}
}

// Scenario 2 (spec end-to-end scenario 2).
func TestParseStructAndInitializer(t *testing.T) {
	root, cu := mustParse(t, "struct V { x : i32; y : i32 } fn main() -> void { v : V = V{1,2}; }")
	if len(root.Decls) != 2 {
		t.Fatalf("expected 2 decls, got %d", len(root.Decls))
	}

	structDecl, ok := root.Decls[0].(*StructDecl)
	if !ok {
		t.Fatalf("first decl is %T, want *StructDecl", root.Decls[0])
	}
	if len(structDecl.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(structDecl.Members))
	}
	for _, m := range structDecl.Members {
		if m.Type.Name != "i32" {
			t.Errorf("member %s type = %q, want i32", m.Name.Name, m.Type.Name)
		}
	}

	registered := cu.Types.GetType("V")
	if registered.IsInvalid() || registered.Kind != TStruct {
		t.Fatalf("type registry does not have V registered as a struct: %+v", registered)
	}

	fn := root.Decls[1].(*FuncDecl)
	assign, ok := fn.Body.Stmts[0].(*Assignment)
	if !ok {
		t.Fatalf("statement is %T, want *Assignment", fn.Body.Stmts[0])
	}
	if !assign.Declare || assign.DeclaredType.Name != "V" {
		t.Fatalf("expected a declaration typed V, got %+v", assign)
	}
	init, ok := assign.Right.(*StructInit)
	if !ok {
		t.Fatalf("rhs is %T, want *StructInit", assign.Right)
	}
	if len(init.Args) != 2 {
		t.Fatalf("expected 2 struct-init args, got %d", len(init.Args))
	}
	if n, ok := init.Args[0].(*NumberLiteral); !ok || n.Payload != "1" {
		t.Errorf("first struct-init arg = %v, want number literal 1", init.Args[0])
	}
	if n, ok := init.Args[1].(*NumberLiteral); !ok || n.Payload != "2" {
		t.Errorf("second struct-init arg = %v, want number literal 2", init.Args[1])
	}
}

// Scenario 3 (spec end-to-end scenario 3).
func TestParsePointerParamAndDeref(t *testing.T) {
	root, _ := mustParse(t, "fn f(x: *i32) -> i32 { -> *x + 1; }")
	fn := root.Decls[0].(*FuncDecl)
	if len(fn.Params) != 1 {
		t.Fatalf("expected 1 param, got %d", len(fn.Params))
	}
	param := fn.Params[0]
	if param.Type.Kind != TPointer || param.Type.Elem == nil || param.Type.Elem.Name != "i32" {
		t.Fatalf("param type = %+v, want pointer to i32", param.Type)
	}

	ret := fn.Body.Stmts[0].(*ReturnStmt)
	bin, ok := ret.Expr.(*BinaryExpr)
	if !ok || bin.Op != TokenKind('+') {
		t.Fatalf("return expr = %v, want a binary + expression", ret.Expr)
	}
	deref, ok := bin.Left.(*UnaryExpr)
	if !ok || deref.Op != TokenKind('*') {
		t.Fatalf("lhs = %v, want unary * of x", bin.Left)
	}
	if ident, ok := deref.Operand.(*Identifier); !ok || ident.Name != "x" {
		t.Fatalf("deref operand = %v, want identifier x", deref.Operand)
	}
	if num, ok := bin.Right.(*NumberLiteral); !ok || num.Payload != "1" {
		t.Fatalf("rhs = %v, want number literal 1", bin.Right)
	}
}

// Scenario 4 (spec end-to-end scenario 4).
func TestParseNestedBlockCommentBeforeDecl(t *testing.T) {
	root, _ := mustParse(t, "/* a /* b */ c */ fn g()->void{}")
	if len(root.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(root.Decls))
	}
	fn, ok := root.Decls[0].(*FuncDecl)
	if !ok || fn.Name.Name != "g" {
		t.Fatalf("decl = %v, want function g", root.Decls[0])
	}
}

// Scenario 5 (spec end-to-end scenario 5).
func TestParseIfWithBareReturn(t *testing.T) {
	root, _ := mustParse(t, "fn h()->void { if 1 == 1 { -> ; } }")
	fn := root.Decls[0].(*FuncDecl)
	ifStmt, ok := fn.Body.Stmts[0].(*IfStmt)
	if !ok {
		t.Fatalf("statement is %T, want *IfStmt", fn.Body.Stmts[0])
	}
	cond, ok := ifStmt.Cond.(*BinaryExpr)
	if !ok || cond.Op != EQ_EQ {
		t.Fatalf("condition = %v, want a == comparison", ifStmt.Cond)
	}
	ret, ok := ifStmt.Body.Stmts[0].(*ReturnStmt)
	if !ok || ret.Expr != nil {
		t.Fatalf("if-body statement = %v, want a bare return", ifStmt.Body.Stmts[0])
	}
}

// TestParseIfConditionEndingInIdentifierDoesNotConsumeBodyBraceAsStructInit
// pins down the if-condition's stop-at-`{` behavior (spec.md §4.4) for the
// case most likely to be misparsed as struct initialization: a condition
// whose last token is a bare identifier immediately followed by the body's
// opening brace.
func TestParseIfConditionEndingInIdentifierDoesNotConsumeBodyBraceAsStructInit(t *testing.T) {
	root, _ := mustParse(t, "fn h(ok: bool)->void { if ok { -> ; } }")
	fn := root.Decls[0].(*FuncDecl)
	ifStmt, ok := fn.Body.Stmts[0].(*IfStmt)
	if !ok {
		t.Fatalf("statement is %T, want *IfStmt", fn.Body.Stmts[0])
	}
	if _, ok := ifStmt.Cond.(*Identifier); !ok {
		t.Fatalf("condition = %v, want a bare identifier", ifStmt.Cond)
	}
	if len(ifStmt.Body.Stmts) != 1 {
		t.Fatalf("expected 1 if-body statement, got %d", len(ifStmt.Body.Stmts))
	}
}

// Scenario 6 (spec end-to-end scenario 6): expression-position parsing of
// two hex literals added together.
func TestParseHexAdditionExpression(t *testing.T) {
	cu := parseSource(t, "0x10 + 0x10")
	cu.Scopes.PushScope(cu.Source.Path, 1)
	p := newParser(newCursor(cu.Tokens), cu.Types, cu.Scopes, cu.Source.Path)
	expr, err := p.parseBinary(0, noStop, false)
	if err != nil {
		t.Fatalf("parseBinary returned error: %v", err)
	}
	bin, ok := expr.(*BinaryExpr)
	if !ok || bin.Op != TokenKind('+') {
		t.Fatalf("expr = %v, want a binary + expression", expr)
	}
	left := bin.Left.(*NumberLiteral)
	right := bin.Right.(*NumberLiteral)
	if left.Payload != "16" || right.Payload != "16" {
		t.Fatalf("operands = %q, %q, want 16, 16", left.Payload, right.Payload)
	}
}

func TestParseFunctionPrototype(t *testing.T) {
	root, _ := mustParse(t, "fn puts(s: *i8) -> i32;")
	fn := root.Decls[0].(*FuncDecl)
	if fn.Body != nil {
		t.Fatalf("expected a nil body for a prototype, got %v", fn.Body)
	}
}

func TestParseVariadicParam(t *testing.T) {
	root, _ := mustParse(t, "fn printf(fmt: *i8, ...) -> i32;")
	fn := root.Decls[0].(*FuncDecl)
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	if !fn.Params[1].Variadic {
		t.Errorf("second param should be variadic")
	}
}

func TestParsePrecedenceBindsTighterOperatorsFirst(t *testing.T) {
	root, _ := mustParse(t, "fn f()->i32 { -> 1 + 2 * 3; }")
	fn := root.Decls[0].(*FuncDecl)
	ret := fn.Body.Stmts[0].(*ReturnStmt)
	// 2 * 3 binds tighter than +, regardless of how a same-precedence
	// chain groups.
	outer, ok := ret.Expr.(*BinaryExpr)
	if !ok || outer.Op != TokenKind('+') {
		t.Fatalf("outer expr = %v, want a + at the top", ret.Expr)
	}
	mul, ok := outer.Right.(*BinaryExpr)
	if !ok || mul.Op != TokenKind('*') {
		t.Fatalf("rhs of + = %v, want 2 * 3", outer.Right)
	}
}

// TestParseEqualPrecedenceChainGroupsRightward pins down the precedence
// climber's actual grouping for a chain of equal-precedence operators: it
// recurses into the right-hand side with min_bp = rhs_bp (one less than
// the operator's own binding power), so a same-precedence operator
// encountered while parsing that right-hand side is consumed there rather
// than bubbling back up to the outer call. The net effect groups
// right-to-left, matching original_source/src/Parser.cpp's
// parse_binary_expression exactly (not C-style left-to-right grouping).
func TestParseEqualPrecedenceChainGroupsRightward(t *testing.T) {
	root, _ := mustParse(t, "fn f()->i32 { -> 1 - 2 - 3; }")
	fn := root.Decls[0].(*FuncDecl)
	ret := fn.Body.Stmts[0].(*ReturnStmt)
	// 1 - (2 - 3)
	outer, ok := ret.Expr.(*BinaryExpr)
	if !ok || outer.Op != TokenKind('-') {
		t.Fatalf("outer expr = %v, want a - at the top", ret.Expr)
	}
	if _, ok := outer.Left.(*NumberLiteral); !ok {
		t.Fatalf("outer lhs = %v, want the literal 1", outer.Left)
	}
	inner, ok := outer.Right.(*BinaryExpr)
	if !ok || inner.Op != TokenKind('-') {
		t.Fatalf("outer rhs = %v, want a nested - expression", outer.Right)
	}
}

func TestParseCompoundAssignment(t *testing.T) {
	root, _ := mustParse(t, "fn f()->void { x += 1; }")
	fn := root.Decls[0].(*FuncDecl)
	assign, ok := fn.Body.Stmts[0].(*Assignment)
	if !ok || assign.Op != PLUS_EQ {
		t.Fatalf("statement = %v, want a += assignment", fn.Body.Stmts[0])
	}
}

func TestParseForLoop(t *testing.T) {
	root, _ := mustParse(t, "fn f()->void { for (i := 0; i < 10; i += 1) { } }")
	fn := root.Decls[0].(*FuncDecl)
	forStmt, ok := fn.Body.Stmts[0].(*ForStmt)
	if !ok {
		t.Fatalf("statement is %T, want *ForStmt", fn.Body.Stmts[0])
	}
	if forStmt.Init == nil || forStmt.Cond == nil || forStmt.Post == nil {
		t.Fatalf("expected all three for-clauses populated, got %+v", forStmt)
	}
}

func TestParseBreakStatement(t *testing.T) {
	root, _ := mustParse(t, "fn f()->void { for (;;) { break; } }")
	fn := root.Decls[0].(*FuncDecl)
	forStmt := fn.Body.Stmts[0].(*ForStmt)
	if _, ok := forStmt.Body.Stmts[0].(*BreakStmt); !ok {
		t.Fatalf("statement is %T, want *BreakStmt", forStmt.Body.Stmts[0])
	}
}

func TestParseScopeStackBalancedAfterParse(t *testing.T) {
	_, cu := mustParse(t, "fn f()->void { { { } } }")
	if !cu.Scopes.IsEmpty() {
		t.Fatalf("scope stack should be empty after Parse returns, depth = %d", cu.Scopes.Depth())
	}
}

func TestParseUnexpectedTopLevelTokenIsFatal(t *testing.T) {
	cu := parseSource(t, "123")
	_, err := Parse(cu)
	if err == nil {
		t.Fatal("expected a syntax error for a number at file level")
	}
}

func TestParseFunctionRecursesBeforeBodyParsed(t *testing.T) {
	// fact calls itself; the self-call parses as a FuncCall whose target is
	// the identifier fact. The parser does not look call targets up in the
	// scope stack, so this checks the AST shape only.
	root, _ := mustParse(t, "fn fact(n: i32) -> i32 { -> fact(n); }")
	fn := root.Decls[0].(*FuncDecl)
	ret := fn.Body.Stmts[0].(*ReturnStmt)
	call, ok := ret.Expr.(*FuncCall)
	if !ok {
		t.Fatalf("return expr = %v, want a call to fact", ret.Expr)
	}
	if ident, ok := call.Operand.(*Identifier); !ok || ident.Name != "fact" {
		t.Fatalf("call target = %v, want fact", call.Operand)
	}
}
