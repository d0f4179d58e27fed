package main

import (
	"os"
	"strings"

	"checklist-cli/internal/cli"
)

// quickAddText reports whether s is a "+text" quick-add token.
func quickAddText(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "+") {
		return "", false
	}
	text := strings.TrimSpace(strings.TrimPrefix(s, "+"))
	return text, text != ""
}

func rewriteQuickAddArgs(argv []string) []string {
	// Convenience: `checklist +"Buy milk"` works like `checklist items add "Buy milk"`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv before parsing.
	// Persistent flags may come first (e.g. `checklist --dir ... +milk`), so we look for the
	// first positional token, not just argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":     true,
		"--backend": true,
		"--format":  true,
	}

	rewrite := func(i int) []string {
		text, ok := quickAddText(argv[i])
		if !ok {
			return argv
		}
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, "items", "add", text)
		out = append(out, argv[i+1:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) {
				return rewrite(i + 1)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}
		return rewrite(i)
	}
	return argv
}

func main() {
	os.Args = rewriteQuickAddArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
