package scaffold

import "github.com/pystarter/pystarter/internal/venv"

// SeedFile is a file written with literal contents.
type SeedFile struct {
	Path    string // slash-separated, relative to the project root
	Content string
}

// Dirs returns the directories created inside the project root, in order.
func Dirs(name string) []string {
	return []string{name, "docs", "tests"}
}

// SeedFiles returns the boilerplate files for a project, in write order.
func SeedFiles(name, envName string) []SeedFile {
	return []SeedFile{
		{Path: name + "/__init__.py", Content: "# main package"},
		{Path: name + "/main.py", Content: "print('Olá Mundo')"},
		{Path: "tests/test_base.py", Content: "# testes unitários \nimport pytest"},
		{Path: "tests/__init__.py", Content: "# pytest package"},
		{Path: "README.md", Content: "# Documentação do Projeto " + name},
		{Path: ".gitignore", Content: venv.GitignorePattern(envName)},
	}
}
