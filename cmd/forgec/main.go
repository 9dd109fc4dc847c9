// Command forgec drives the front end over a single source file: lex,
// parse, and report. It does not emit an object file or executable — the
// LLVM-backed backend this front end hands its AST to is an external
// collaborator (spec.md §1) outside this module's scope.
package main

import (
	"flag"
	"fmt"
	"os"

	"forgec/pkg/compiler"
)

func main() {
	dumpTokens := flag.Bool("dump-tokens", false, "print the lexed token stream and exit")
	dumpAST := flag.Bool("dump-ast", false, "print a one-line summary of each parsed file-level declaration")
	dumpTypes := flag.Bool("dump-types", false, "print the type registry after parsing")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <source-file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	sink := compiler.NewSink(os.Stderr)

	cu, err := compiler.NewCompileUnit(path)
	if err != nil {
		if diag, ok := err.(*compiler.Diagnostic); ok {
			sink.Fatal(diag, cu.Source)
		}
		fmt.Fprintf(os.Stderr, "forgec: %v\n", err)
		os.Exit(1)
	}

	if *dumpTokens {
		for _, tok := range cu.Tokens {
			fmt.Println(tok)
		}
		return
	}

	root, err := compiler.Parse(cu)
	if err != nil {
		if diag, ok := err.(*compiler.Diagnostic); ok {
			sink.Fatal(diag, cu.Source)
		}
		fmt.Fprintf(os.Stderr, "forgec: %v\n", err)
		os.Exit(1)
	}

	if *dumpAST {
		for _, decl := range root.Decls {
			fmt.Println(decl)
		}
	}

	if *dumpTypes {
		fmt.Println(cu.Types)
	}
}
