// Package report runs the full pipeline over one catalog and one set of
// raw balances: compile, derive statements, audit.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/rgs/internal/audit"
	"github.com/cleared-dev/rgs/internal/hierarchy"
	"github.com/cleared-dev/rgs/internal/model"
	"github.com/cleared-dev/rgs/internal/statements"
)

// Report is the outcome of one pipeline run.
type Report struct {
	Result     *hierarchy.Result
	Statements statements.Set
	Findings   []audit.Finding
}

// Builder holds the configured pipeline stages. It is safe for concurrent
// use; every Build call works on its own data.
type Builder struct {
	compiler  *hierarchy.Compiler
	generator *statements.Generator
}

// NewBuilder creates a Builder from a compiler and a generator.
func NewBuilder(compiler *hierarchy.Compiler, generator *statements.Generator) *Builder {
	return &Builder{compiler: compiler, generator: generator}
}

// DefaultBuilder uses the default compiler and generator.
func DefaultBuilder() *Builder {
	return NewBuilder(hierarchy.DefaultCompiler(), statements.Default())
}

// Build compiles accounts and raw balances and derives every statement.
func (b *Builder) Build(accounts []model.Account, raw map[string]decimal.Decimal) *Report {
	res := b.compiler.Compile(accounts, raw)
	set := b.generator.All(res.Forest)
	return &Report{
		Result:     res,
		Statements: set,
		Findings:   audit.Verify(res, set, b.compiler),
	}
}

// Forest returns the compiled forest.
func (r *Report) Forest() *hierarchy.Forest {
	return r.Result.Forest
}

// Clean reports whether the audit raised no error-severity findings.
func (r *Report) Clean() bool {
	return !audit.HasErrors(r.Findings)
}
