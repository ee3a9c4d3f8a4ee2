package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/emplang/empc/internal/project"
)

const scaffoldMain = `fn main() {
}
`

const scaffoldGitignore = `/emp_mods/
*.ll
`

func scaffoldReadme(name string) string {
	return fmt.Sprintf("# %s\n\nAn EMP project. Build with `emp src/main.em`.\n", name)
}

// scaffold implements `emp new <name>` (spec.md §6.1): a fresh project
// directory with emp.toml, src/main.em, emp_mods/, .gitignore and README.
func scaffold(name string) int {
	if _, err := os.Stat(name); err == nil {
		fmt.Fprintf(os.Stderr, "%s: '%s' already exists\n", red("Error"), name)
		return exitUsage
	}

	dirs := []string{
		name,
		filepath.Join(name, "src"),
		filepath.Join(name, "emp_mods"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			return exitUsage
		}
	}

	files := map[string]string{
		filepath.Join(name, "src", "main.em"): scaffoldMain,
		filepath.Join(name, ".gitignore"):     scaffoldGitignore,
		filepath.Join(name, "README.md"):      scaffoldReadme(name),
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			return exitUsage
		}
	}

	manifest := project.DefaultManifest(name)
	if err := project.Write(filepath.Join(name, "emp.toml"), manifest); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		return exitUsage
	}

	fmt.Printf("%s created project '%s'\n", green("✓"), name)
	fmt.Printf("  %s\n", cyan(fmt.Sprintf("cd %s && emp src/main.em", name)))
	return exitOK
}
