package compiler

import "fmt"

// Node is implemented by every AST node. Unlike the source's tagged
// variant with shared "left"/"right" links (spec.md §9), each kind here is
// its own concrete type with exactly the children it needs; a Node only
// has to answer where it came from.
type Node interface {
	Pos() Token
	String() string
}

// Expr is a Node that produces a value.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a Node that does not produce a value.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is a Node accepted at file level.
type Decl interface {
	Node
	declNode()
}

//  Expressions

// Identifier is a bare name reference, cached alongside the token it came
// from (spec.md §3: "source token and cached name bytes").
type Identifier struct {
	Token Token
	Name  string
}

func (i *Identifier) Pos() Token     { return i.Token }
func (*Identifier) exprNode()        {}
func (i *Identifier) String() string { return i.Name }

// NumberLiteral is a decimal or (decimal-re-encoded) hexadecimal numeric
// literal.
type NumberLiteral struct {
	Token   Token
	Payload string
}

func (n *NumberLiteral) Pos() Token     { return n.Token }
func (*NumberLiteral) exprNode()        {}
func (n *NumberLiteral) String() string { return n.Payload }

// StringLiteral is a "..." literal, escapes already decoded by the lexer.
type StringLiteral struct {
	Token Token
	Value string
}

func (s *StringLiteral) Pos() Token     { return s.Token }
func (*StringLiteral) exprNode()        {}
func (s *StringLiteral) String() string { return fmt.Sprintf("%q", s.Value) }

// CharLiteral is a 'c' literal.
type CharLiteral struct {
	Token Token
	Value byte
}

func (c *CharLiteral) Pos() Token     { return c.Token }
func (*CharLiteral) exprNode()        {}
func (c *CharLiteral) String() string { return fmt.Sprintf("'%c'", c.Value) }

// BinaryExpr is Left Op Right, built by the precedence-climbing loop.
type BinaryExpr struct {
	Token Token
	Op    TokenKind
	Left  Expr
	Right Expr
}

func (b *BinaryExpr) Pos() Token { return b.Token }
func (*BinaryExpr) exprNode()    {}
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// UnaryExpr is a prefix operator applied to Operand: address-of/deref `*`,
// `@`, unary `-`, `!`, and prefix `++`/`--` (cast gets its own node, Cast).
type UnaryExpr struct {
	Token   Token
	Op      TokenKind
	Operand Expr
}

func (u *UnaryExpr) Pos() Token { return u.Token }
func (*UnaryExpr) exprNode()    {}
func (u *UnaryExpr) String() string {
	return fmt.Sprintf("(%s%s)", u.Op, u.Operand)
}

// PostfixExpr is Operand++ or Operand--.
type PostfixExpr struct {
	Token   Token
	Op      TokenKind
	Operand Expr
}

func (p *PostfixExpr) Pos() Token { return p.Token }
func (*PostfixExpr) exprNode()    {}
func (p *PostfixExpr) String() string {
	return fmt.Sprintf("(%s%s)", p.Operand, p.Op)
}

// IndexExpr is Operand[Index].
type IndexExpr struct {
	Token   Token
	Operand Expr
	Index   Expr
}

func (x *IndexExpr) Pos() Token { return x.Token }
func (*IndexExpr) exprNode()    {}
func (x *IndexExpr) String() string {
	return fmt.Sprintf("%s[%s]", x.Operand, x.Index)
}

// Selector is Operand.Field.
type Selector struct {
	Token   Token // the '.'
	Operand Expr
	Field   *Identifier
}

func (s *Selector) Pos() Token { return s.Token }
func (*Selector) exprNode()    {}
func (s *Selector) String() string {
	return fmt.Sprintf("%s.%s", s.Operand, s.Field.Name)
}

// Cast is `#Type Expr`.
type Cast struct {
	Token Token
	Type  TypeInfo
	Expr  Expr
}

func (c *Cast) Pos() Token { return c.Token }
func (*Cast) exprNode()    {}
func (c *Cast) String() string {
	return fmt.Sprintf("#%s(%s)", c.Type.Name, c.Expr)
}

// FuncCall is Operand(Args...).
type FuncCall struct {
	Token   Token
	Operand Expr
	Args    []Expr
}

func (c *FuncCall) Pos() Token { return c.Token }
func (*FuncCall) exprNode()    {}
func (c *FuncCall) String() string {
	return fmt.Sprintf("%s(%v)", c.Operand, c.Args)
}

// StructInit is Operand{Args...}; Operand must be an identifier (spec.md
// §4.4). The parser does not check that it names a registered struct type.
type StructInit struct {
	Token   Token
	Operand *Identifier
	Args    []Expr
}

func (s *StructInit) Pos() Token { return s.Token }
func (*StructInit) exprNode()    {}
func (s *StructInit) String() string {
	return fmt.Sprintf("%s{%v}", s.Operand.Name, s.Args)
}

//  Statements

// VariableDecl introduces a name with a declared type; Const reflects a
// `::` declaration rather than `:` (spec.md §4.4). It appears standalone
// only as a struct member, where Const is always false; function
// parameters use Param, and a local is folded into Assignment's Declare
// form rather than duplicated.
type VariableDecl struct {
	Token Token
	Name  *Identifier
	Type  TypeInfo
	Const bool
}

func (*VariableDecl) stmtNode()    {}
func (v *VariableDecl) Pos() Token { return v.Token }
func (v *VariableDecl) String() string {
	return fmt.Sprintf("%s: %s", v.Name.Name, v.Type.Name)
}

// Assignment covers both plain assignment (Declare == false) and a
// combined declare-and-initialize statement (Declare == true), mirroring
// spec.md §3's single Assignment payload with an is-declaration flag
// rather than two separate node kinds.
type Assignment struct {
	Token        Token
	Left         Expr
	Op           TokenKind
	Right        Expr
	Declare      bool
	Const        bool
	DeclaredType TypeInfo // only meaningful when Declare
}

func (*Assignment) stmtNode()    {}
func (a *Assignment) Pos() Token { return a.Token }
func (a *Assignment) String() string {
	if a.Declare {
		marker := ":"
		if a.Const {
			marker = "::"
		}
		return fmt.Sprintf("%s %s %s = %s", a.Left, marker, a.DeclaredType.Name, a.Right)
	}
	return fmt.Sprintf("%s %s %s", a.Left, a.Op, a.Right)
}

// ReturnStmt is `-> Expr;`. Expr is nil for a bare `->;` (spec.md scenario
// 5).
type ReturnStmt struct {
	Token Token
	Expr  Expr
}

func (*ReturnStmt) stmtNode()    {}
func (r *ReturnStmt) Pos() Token { return r.Token }
func (r *ReturnStmt) String() string {
	if r.Expr == nil {
		return "-> ;"
	}
	return fmt.Sprintf("-> %s;", r.Expr)
}

// BreakStmt is `break;`.
type BreakStmt struct {
	Token Token
}

func (*BreakStmt) stmtNode()        {}
func (b *BreakStmt) Pos() Token     { return b.Token }
func (b *BreakStmt) String() string { return "break;" }

// Block is a `{ ... }` statement sequence. ScopeStart/ScopeEnd from
// spec.md §3 are represented here as the block's opening and closing
// tokens rather than separate node kinds in the statement sequence — a
// walker that needs the `{`/`}` positions reads Open/Close directly.
type Block struct {
	Open  Token
	Close Token
	Stmts []Stmt
}

func (*Block) stmtNode()    {}
func (b *Block) Pos() Token { return b.Open }
func (b *Block) String() string {
	return fmt.Sprintf("{ %d stmts }", len(b.Stmts))
}

// IfStmt is `if Cond { Body }`. The grammar has no `else` (spec.md §4.4).
type IfStmt struct {
	Token Token
	Cond  Expr
	Body  *Block
}

func (*IfStmt) stmtNode()    {}
func (i *IfStmt) Pos() Token { return i.Token }
func (i *IfStmt) String() string {
	return fmt.Sprintf("if %s %s", i.Cond, i.Body)
}

// ForStmt is `for (Init; Cond; Post) { Body }`. Init and Post are
// identifier statements (an Assignment) or nil; Cond is an expression or
// nil, defaulting to "true" downstream. This grammar was not specified by
// the source, whose for-parser was a stub (spec.md §9 open question); it
// is grounded on the rest of the grammar's C-family shape.
type ForStmt struct {
	Token Token
	Init  Stmt
	Cond  Expr
	Post  Stmt
	Body  *Block
}

func (*ForStmt) stmtNode()    {}
func (f *ForStmt) Pos() Token { return f.Token }
func (f *ForStmt) String() string {
	return fmt.Sprintf("for (%s; %s; %s) %s", f.Init, f.Cond, f.Post, f.Body)
}

//  Declarations

// Param is one `name : Type` entry in a function's parameter list.
type Param struct {
	Name     *Identifier
	Type     TypeInfo
	Variadic bool
}

// FuncDecl is `fn name(params) -> RetType { Body }`, or a prototype when
// Body is nil.
type FuncDecl struct {
	Token      Token
	Name       *Identifier
	Params     []Param
	ReturnType TypeInfo
	Body       *Block // nil for a prototype ("fn f(...) -> T;")
}

func (*FuncDecl) declNode()    {}
func (f *FuncDecl) Pos() Token { return f.Token }
func (f *FuncDecl) String() string {
	return fmt.Sprintf("fn %s(%d params) -> %s", f.Name.Name, len(f.Params), f.ReturnType.Name)
}

// StructDecl is `struct name { members }`.
type StructDecl struct {
	Token   Token
	Name    *Identifier
	Members []VariableDecl
}

func (*StructDecl) declNode()    {}
func (s *StructDecl) Pos() Token { return s.Token }
func (s *StructDecl) String() string {
	return fmt.Sprintf("struct %s(%d members)", s.Name.Name, len(s.Members))
}

// Root is the parser's final output: every file-level declaration in
// source order. Spec.md §3 describes this as a "forward chain of
// file-level declarations via a left link"; per §9's redesign guidance
// that chain becomes an ordered slice here.
type Root struct {
	Decls []Decl
}

func (r *Root) Pos() Token { return Token{} }
func (r *Root) String() string {
	return fmt.Sprintf("Root(%d decls)", len(r.Decls))
}
