package main

import (
	"flag"
	"fmt"
	"os"

	"portfolio-customizer/internal/editor"
)

// apply_theme rewrites a saved portfolio page with one of the catalog
// themes, the same way the editor does.
func main() {
	in := flag.String("in", "portfolio.html", "page to theme")
	out := flag.String("out", "", "output file (default: overwrite -in)")
	name := flag.String("theme", "Indigo Light", "catalog theme name")
	list := flag.Bool("list", false, "list themes and exit")
	flag.Parse()

	if *list {
		for _, t := range editor.Themes() {
			mode := "light"
			if t.IsDark {
				mode = "dark"
			}
			fmt.Printf("%-14s %s %s\n", t.Name, t.Primary, mode)
		}
		return
	}

	t, ok := editor.ThemeByName(*name)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown theme %q (see -list)\n", *name)
		os.Exit(2)
	}
	b, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read page: %v\n", err)
		os.Exit(2)
	}
	e, err := editor.New(string(b))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load page: %v\n", err)
		os.Exit(2)
	}
	if err := e.ApplyTheme(t); err != nil {
		fmt.Fprintf(os.Stderr, "apply theme: %v\n", err)
		os.Exit(2)
	}
	if *out == "" {
		*out = *in
	}
	if err := os.WriteFile(*out, []byte(e.Snapshot()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write page: %v\n", err)
		os.Exit(2)
	}
	fmt.Printf("wrote %s with %s\n", *out, t.Name)
}
