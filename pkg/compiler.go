package flint

import (
	"fmt"
	"io"
)

// Result describes the outcome of a single compilation.
type Result struct {
	// OutputPath is the path the intermediate target text was written to.
	// Empty when Errors is non-empty — on any recorded error no file is
	// created (spec.md §5, §7).
	OutputPath string
	Errors     []CompileError
}

// Compiled reports whether the compilation produced output.
func (r *Result) Compiled() bool {
	return len(r.Errors) == 0
}

// Compiler orchestrates a Source, Lexer, SymbolTable, Diagnostics and
// Emitter through exactly one pass over a Flint source file (spec.md §5:
// "the parser, symbol table, and emitter all mutate through a single
// owner"). A Compiler is single-use: call Compile once per instance.
type Compiler struct {
	debug bool
}

// NewCompiler creates a Compiler. debug threads through to the Emitter,
// gating the human-readable comments the -d/--debug CLI flag asks for.
func NewCompiler(debug bool) *Compiler {
	return &Compiler{debug: debug}
}

// Compile reads sourcePath, compiles it, and — iff no error was recorded —
// writes the emitted intermediate text to outputPath. Diagnostics are
// written to diagOut as they are discovered.
func (c *Compiler) Compile(sourcePath, outputPath string, diagOut io.Writer) (*Result, error) {
	source, err := NewSource(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("flint: reading %s: %w", sourcePath, err)
	}
	return c.compile(source, outputPath, diagOut)
}

func (c *Compiler) compile(source *Source, outputPath string, diagOut io.Writer) (*Result, error) {
	diag := NewDiagnostics(diagOut, source)
	table := NewSymbolTable()
	em := NewEmitter(c.debug)
	lex := NewLexer(source, diag)

	em.Prologue()
	labels := InstallRuntimeProcedures(table, em)

	parser := NewParser(lex, diag, table, em)
	parser.Parse()

	EmitRuntimeProcedures(em, labels)

	result := &Result{Errors: diag.Errors()}
	if !result.Compiled() {
		return result, nil
	}

	if err := em.Commit(outputPath); err != nil {
		return nil, fmt.Errorf("flint: writing %s: %w", outputPath, err)
	}
	result.OutputPath = outputPath

	return result, nil
}
