package symtab

import (
	"fmt"
	"io"
	"strings"
)

// Print writes the scope tree rooted at s. Built-in functions are omitted.
func Print(w io.Writer, s *Scope) error {
	return printScope(w, s, 0)
}

func printScope(w io.Writer, s *Scope, depth int) error {
	indent := strings.Repeat("  ", depth)
	if _, err := fmt.Fprintf(w, "%s[%s]\n", indent, s.name); err != nil {
		return err
	}
	for _, sym := range s.symbols {
		if f, ok := sym.(*Function); ok && f.Builtin {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s  %s\n", indent, sym); err != nil {
			return err
		}
	}
	for _, c := range s.children {
		if err := printScope(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}
