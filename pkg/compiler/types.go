package compiler

import (
	"fmt"
	"sort"
	"strings"
)

// TypeKind discriminates the structural shape of a TypeInfo.
type TypeKind int

const (
	TInvalid TypeKind = iota
	TDetect           // placeholder for an inferred declaration (":=")
	TVoid
	TBool
	TInt    // signed integer of Width bits
	TUint   // unsigned integer of Width bits
	TFloat  // floating point of Width bits
	TString // distinct kind; lowers to pointer-to-u8 downstream
	TPointer
	TStruct
	TUntypedInt   // literal awaiting a concrete width from context
	TUntypedFloat // literal awaiting a concrete width from context
)

// TypeInfo is the symbolic, structural description of a type. Apart from
// Width, the bit width of numeric primitives, it carries no size or ABI
// layout — that belongs to the code generator this core hands its AST to
// (spec.md §3).
type TypeInfo struct {
	Kind  TypeKind
	Name  string // canonical name, e.g. "i32", "MyStruct", "i32**"
	Width int    // bit width for TInt/TUint/TFloat; 0 otherwise

	Elem *TypeInfo // pointee, for TPointer

	// StructName is set for TStruct. The registry holds only this TypeInfo
	// for a struct, not its member list; the members are on the StructDecl.
	StructName string

	// Source is the token that first introduced this type, for diagnostics.
	Source Token
}

func (t TypeInfo) String() string { return t.Name }

// IsInvalid reports whether t is the parser-level sentinel used when a
// referenced type name has no entry in the registry (spec.md §4.4: "the
// analyzer is responsible for reporting undefined types").
func (t TypeInfo) IsInvalid() bool { return t.Kind == TInvalid }

// primitiveTypes seeds the Type Registry at startup (spec.md §4.5).
func primitiveTypes() map[string]TypeInfo {
	m := map[string]TypeInfo{
		"void": {Kind: TVoid, Name: "void"},
		"bool": {Kind: TBool, Name: "bool"},
	}
	for _, w := range []int{8, 16, 32, 64} {
		m[fmt.Sprintf("i%d", w)] = TypeInfo{Kind: TInt, Name: fmt.Sprintf("i%d", w), Width: w}
		m[fmt.Sprintf("u%d", w)] = TypeInfo{Kind: TUint, Name: fmt.Sprintf("u%d", w), Width: w}
	}
	m["f32"] = TypeInfo{Kind: TFloat, Name: "f32", Width: 32}
	m["f64"] = TypeInfo{Kind: TFloat, Name: "f64", Width: 64}
	return m
}

// TypeRegistry maps a type name to its structural TypeInfo. Lookups for an
// unregistered name return the TInvalid sentinel rather than an error or a
// missing-ok boolean, matching the source's get_type contract (spec.md
// §4.5) — the parser keeps going and leaves the report to the analyzer.
type TypeRegistry struct {
	types map[string]TypeInfo
}

// NewTypeRegistry builds a registry pre-populated with every primitive.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{types: primitiveTypes()}
}

// GetType looks up name, returning the TInvalid sentinel if it is not yet
// registered.
func (r *TypeRegistry) GetType(name string) TypeInfo {
	if t, ok := r.types[name]; ok {
		return t
	}
	return TypeInfo{Kind: TInvalid, Name: name}
}

// AddType registers a struct definition, making its name resolvable by
// subsequent GetType calls (spec.md §4.4: "registered in the Type Registry
// immediately").
func (r *TypeRegistry) AddType(name string, info TypeInfo) {
	r.types[name] = info
}

func (r *TypeRegistry) String() string {
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s: %s\n", name, r.types[name])
	}
	return b.String()
}

// PointerTo returns the TypeInfo for a pointer to elem, synthesizing the
// "base*" name convention spec.md §3 describes ("identifier = base-identifier
// + \"*\" for each indirection").
func PointerTo(elem TypeInfo, source Token) TypeInfo {
	return TypeInfo{Kind: TPointer, Name: elem.Name + "*", Elem: &elem, Source: source}
}
