package doc

import (
	"fmt"
	"strings"

	"github.com/FlorianKrull/mcc/sema"
	"github.com/FlorianKrull/mcc/symtab"
)

// FormatFile formats a FileDoc for terminal display. Undocumented
// functions are listed by signature only.
func FormatFile(fd *FileDoc) string {
	var sb strings.Builder

	if fd.Doc != "" {
		sb.WriteString(fd.Doc)
		sb.WriteString("\n\n")
	}

	for _, f := range fd.Funcs {
		sb.WriteString(FormatSymbol(f.Doc, f.Signature))
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// FormatSymbol formats a single symbol lookup result.
func FormatSymbol(docStr, signature string) string {
	var sb strings.Builder
	sb.WriteString(signature)
	sb.WriteString("\n")
	if docStr != "" {
		sb.WriteString("    ")
		sb.WriteString(strings.ReplaceAll(docStr, "\n", "\n    "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatBuiltins lists the built-in functions available to every program.
func FormatBuiltins() string {
	var sb strings.Builder
	sb.WriteString("Built-in functions:\n")
	for _, b := range symtab.Builtins() {
		fmt.Fprintf(&sb, "  %-24s %s\n", b.String(), builtinDocs[b.Name])
	}
	return sb.String()
}

// FormatDiagnostics lists every semantic error kind with its message.
func FormatDiagnostics() string {
	var sb strings.Builder
	sb.WriteString("Semantic errors:\n")
	for _, k := range sema.AllKinds() {
		fmt.Fprintf(&sb, "  %-27s %s\n", k, k.Message())
	}
	return sb.String()
}
