// Command oal is the thin CLI entry point SPEC_FULL.md §1/§5 describes: it
// owns no grammar, parser or module loader (all external collaborators),
// and wires config loading, diagnostic printing and the compiler pipeline
// together, the way the teacher's pkg/cli/entry.go and cmd/funxy/main.go
// wire lexer/parser/analyzer/backend together.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/oal-lang/oal/internal/compiler"
)

func main() {
	configPath := "oal.yaml"
	dumpFormat := ""
	for _, arg := range os.Args[1:] {
		switch {
		case strings.HasPrefix(arg, "-config="):
			configPath = strings.TrimPrefix(arg, "-config=")
		case strings.HasPrefix(arg, "--config="):
			configPath = strings.TrimPrefix(arg, "--config=")
		case strings.HasPrefix(arg, "-dump="):
			dumpFormat = strings.TrimPrefix(arg, "-dump=")
		case strings.HasPrefix(arg, "--dump="):
			dumpFormat = strings.TrimPrefix(arg, "--dump=")
		}
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kind=ConfigError message=%q\n", err.Error())
		os.Exit(1)
	}
	if dumpFormat == "" {
		dumpFormat = cfg.Output
	}

	modules := newDemoSet()
	prog, err := modules.Main()
	if err != nil {
		printDiagnostic(err)
		os.Exit(1)
	}

	spec, err := compiler.Compile(prog, modules)
	if err != nil {
		printDiagnostic(err)
		os.Exit(1)
	}

	if dumpFormat == "yaml" {
		data, err := dumpYAML(spec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "kind=DumpError message=%q\n", err.Error())
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	fmt.Printf("relations=%d references=%d\n", len(spec.Rels), len(spec.Refs))
	for _, rel := range spec.Rels {
		methods := make([]string, 0, len(rel.Transfers))
		for m := range rel.Transfers {
			methods = append(methods, m)
		}
		fmt.Printf("  %s [%s]\n", rel.Pattern, strings.Join(methods, ", "))
	}
	for _, ref := range spec.Refs {
		fmt.Printf("  @%s\n", ref.Name.Bare())
	}
}
