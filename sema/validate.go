// Package sema performs semantic analysis of mC programs: it builds the
// scoped symbol table, infers expression types and records every semantic
// error in a Collector.
//
// Analysis runs in two passes. The first registers all function
// signatures in the root scope so that calls may precede definitions.
// The second analyzes each function body in its own child scope.
package sema

import (
	"sync"

	"github.com/FlorianKrull/mcc/ast"
	"github.com/FlorianKrull/mcc/symtab"
)

// Option configures Validate.
type Option func(*config)

type config struct {
	jobs int
}

// WithJobs analyzes function bodies on n goroutines. The recorded
// diagnostics are identical to a sequential run. n < 2 means sequential.
func WithJobs(n int) Option {
	return func(c *config) { c.jobs = n }
}

// Validate analyzes prog, records semantic errors in ec and returns the
// root scope of the symbol table it built. The AST is not modified.
func Validate(prog *ast.Program, ec *Collector, opts ...Option) *symtab.Scope {
	cfg := config{jobs: 1}
	for _, o := range opts {
		o(&cfg)
	}
	root := symtab.NewRootWithBuiltins()
	if prog == nil {
		return root
	}

	funcs := registerFunctions(prog, root, ec)

	// Scopes are created up front, in function order, so workers never
	// touch the root scope.
	units := make([]*body, len(funcs))
	for i, fn := range funcs {
		units[i] = &body{
			fn:    fn,
			scope: root.CreateChild(fn.Name.Name),
			ec:    NewCollector(),
		}
	}
	analyze(units, cfg.jobs)
	for _, u := range units {
		ec.Merge(u.ec)
	}

	if sym, ok := root.Lookup("main"); !ok || !isFunction(sym) {
		ec.Record(Diagnostic{Loc: prog.Loc, Kind: MainMissing, Name: "main"})
	}
	return root
}

type registrar struct {
	root  *symtab.Scope
	ec    *Collector
	funcs []*ast.Function
}

// registerFunctions inserts a Function symbol per definition and returns
// the functions whose bodies should be analyzed. A definition whose name
// is taken is reported and skipped.
func registerFunctions(prog *ast.Program, root *symtab.Scope, ec *Collector) []*ast.Function {
	r := &registrar{root: root, ec: ec}
	v := &ast.Visitor{UserData: r}
	v.Pre.Function = func(fn *ast.Function, data any) {
		r := data.(*registrar)
		sym := &symtab.Function{Name: fn.Name.Name, Return: fn.ReturnType}
		for _, p := range fn.Params.List {
			sym.Params = append(sym.Params, p.Type)
			sym.ArrayParams = append(sym.ArrayParams, p.IsArray())
		}
		if err := r.root.Insert(sym); err != nil {
			r.ec.Record(Diagnostic{Loc: fn.Loc, Kind: FuncAlreadyDeclared, Name: fn.Name.Name})
			return
		}
		r.funcs = append(r.funcs, fn)
	}
	ast.Walk(prog, v)
	return r.funcs
}

// analyze runs every body, on a fixed pool of workers when jobs > 1.
func analyze(units []*body, jobs int) {
	if jobs < 2 || len(units) < 2 {
		for _, u := range units {
			u.run()
		}
		return
	}
	work := make(chan *body, len(units))
	for _, u := range units {
		work <- u
	}
	close(work)
	var wg sync.WaitGroup
	for i, n := 0, min(jobs, len(units)); i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range work {
				u.run()
			}
		}()
	}
	wg.Wait()
}

func isFunction(sym symtab.Symbol) bool {
	_, ok := sym.(*symtab.Function)
	return ok
}

// Check adapts Validate to ast.Check. After Check returns, Scope and
// Diagnostics hold the results of the last run.
type Check struct {
	opts        []Option
	Scope       *symtab.Scope
	Diagnostics Diagnostics
}

// NewCheck returns a Check that validates with opts.
func NewCheck(opts ...Option) *Check {
	return &Check{opts: opts}
}

func (c *Check) Name() string { return "semantic" }

// Check validates prog and returns the diagnostics as an error, or nil.
func (c *Check) Check(prog *ast.Program) error {
	ec := NewCollector()
	c.Scope = Validate(prog, ec, c.opts...)
	c.Diagnostics = ec.All()
	return ec.Err()
}
