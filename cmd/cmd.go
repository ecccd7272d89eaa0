package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/FlorianKrull/mcc/ast"
	"github.com/FlorianKrull/mcc/compiler"
	"github.com/FlorianKrull/mcc/doc"
	"github.com/FlorianKrull/mcc/sema"
	"github.com/FlorianKrull/mcc/symtab"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// Execute runs the mcc CLI with the given version string.
func Execute(version string) {
	cmd := newCommand(version, &streams{in: os.Stdin, out: os.Stdout, err: os.Stderr})
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func newCommand(version string, s *streams) *cli.Command {
	return &cli.Command{
		Name:                   "mcc",
		Usage:                  "Semantic checker for the mC language",
		Version:                version,
		UseShortOptionHandling: true,
		// Allow `mcc prog.mc` as shorthand for `mcc check prog.mc`
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() > 0 {
				return s.check(cmd.Args().First(), 1, false)
			}
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "Parse and semantically check an mC file",
				ArgsUsage: "<file.mc | ->",
				Flags:     []cli.Flag{jobsFlag(), noColorFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.NArg() < 1 {
						return fmt.Errorf("usage: mcc check [-j N] <file.mc | ->")
					}
					return s.check(cmd.Args().First(), int(cmd.Int("jobs")), cmd.Bool("no-color"))
				},
			},
			{
				Name:      "ast",
				Usage:     "Print the syntax tree of an mC file",
				ArgsUsage: "<file.mc | ->",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "dot", Usage: "Print in Graphviz DOT format"},
					functionFlag(),
					outputFlag(),
				},
				Action: s.astAction,
			},
			{
				Name:      "symbols",
				Usage:     "Check an mC file and print its symbol table",
				ArgsUsage: "<file.mc | ->",
				Flags:     []cli.Flag{functionFlag(), outputFlag(), noColorFlag()},
				Action:    s.symbolsAction,
			},
			{
				Name:      "doc",
				Usage:     "Show documentation for an mC file, a function or the built-ins",
				ArgsUsage: "[file.mc] [function]",
				Action:    s.docAction,
			},
		},
	}
}

func jobsFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "jobs",
		Aliases: []string{"j"},
		Usage:   "Analyze function bodies on this many goroutines",
		Value:   1,
	}
}

func noColorFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "no-color",
		Aliases: []string{"C"},
		Usage:   "Disable ANSI color output",
	}
}

func functionFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "function",
		Aliases: []string{"f"},
		Usage:   "Only print this function",
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Write to this file instead of stdout",
	}
}

func (s *streams) compiler(jobs int) *compiler.Compiler {
	if jobs < 1 {
		jobs = 1
	}
	return &compiler.Compiler{Stdin: s.in, Jobs: jobs}
}

func (s *streams) check(path string, jobs int, noColor bool) error {
	res, err := s.compiler(jobs).Check(path)
	if err != nil {
		return err
	}
	return s.report(res, noColor)
}

// report prints every diagnostic to stderr and returns an error when
// there were any.
func (s *streams) report(res *compiler.Result, noColor bool) error {
	if len(res.Diagnostics) == 0 {
		return nil
	}
	red, reset := "\033[31m", "\033[0m"
	if !useColor(s.err, noColor) {
		red, reset = "", ""
	}
	for _, d := range res.Diagnostics {
		fmt.Fprintf(s.err, "%s:%s: %serror:%s %s\n", res.SourceFile, d.Loc, red, reset, d.Message())
	}
	return fmt.Errorf("%s: %s", res.SourceFile, countErrors(res.Diagnostics))
}

func countErrors(ds sema.Diagnostics) string {
	if len(ds) == 1 {
		return "1 semantic error"
	}
	return fmt.Sprintf("%d semantic errors", len(ds))
}

// useColor is true when w is a terminal and neither --no-color nor
// NO_COLOR ask otherwise.
func useColor(w io.Writer, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (s *streams) astAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: mcc ast [--dot] [-f name] [-o file] <file.mc | ->")
	}
	prog, err := s.compiler(1).ParseFile(cmd.Args().First())
	if err != nil {
		return err
	}

	var node ast.Node = prog
	if name := cmd.String("function"); name != "" {
		fn := findFunction(prog, name)
		if fn == nil {
			return fmt.Errorf("function %q not found in %s", name, prog.SourceFile)
		}
		node = fn
	}

	return s.withOutput(cmd.String("output"), func(w io.Writer) error {
		if cmd.Bool("dot") {
			return ast.PrintDot(w, node)
		}
		return ast.PrintText(w, node)
	})
}

func findFunction(prog *ast.Program, name string) *ast.Function {
	for _, fn := range prog.Functions {
		if fn.Name != nil && fn.Name.Name == name {
			return fn
		}
	}
	return nil
}

func (s *streams) symbolsAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: mcc symbols [-f name] [-o file] <file.mc | ->")
	}
	res, err := s.compiler(1).Check(cmd.Args().First())
	if err != nil {
		return err
	}

	scope := res.Scope
	if name := cmd.String("function"); name != "" {
		found, ok := res.Scope.Find(name)
		if !ok {
			return fmt.Errorf("no scope for function %q in %s", name, res.SourceFile)
		}
		scope = found
	}

	if err := s.withOutput(cmd.String("output"), func(w io.Writer) error {
		return symtab.Print(w, scope)
	}); err != nil {
		return err
	}
	return s.report(res, cmd.Bool("no-color"))
}

// withOutput calls fn with stdout, or with the named file when path is
// set.
func (s *streams) withOutput(path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(s.out)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func (s *streams) docAction(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		fmt.Fprint(s.out, doc.FormatBuiltins())
		fmt.Fprintln(s.out)
		fmt.Fprint(s.out, doc.FormatDiagnostics())
		return nil
	}

	// A bare name that is not a source file looks up a built-in.
	if len(args) == 1 && !strings.HasSuffix(args[0], ".mc") {
		d, sig, ok := doc.LookupSymbol(nil, args[0])
		if !ok {
			return fmt.Errorf("unknown built-in %q", args[0])
		}
		fmt.Fprint(s.out, doc.FormatSymbol(d, sig))
		return nil
	}

	fd, err := doc.ExtractFile(args[0])
	if err != nil {
		return err
	}
	if len(args) == 1 {
		fmt.Fprint(s.out, doc.FormatFile(fd))
		return nil
	}
	d, sig, ok := doc.LookupSymbol(fd, args[1])
	if !ok {
		return fmt.Errorf("%s: no function %q", args[0], args[1])
	}
	fmt.Fprint(s.out, doc.FormatSymbol(d, sig))
	return nil
}
