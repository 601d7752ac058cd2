package generator

import (
	"errors"
	"go/parser"
	"go/token"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/mod/modfile"

	mvcerrors "github.com/conneroisu/mvcgen/internal/errors"
)

// ResolveImportPath returns the import path of dir by locating the nearest
// enclosing go.mod.
func ResolveImportPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", mvcerrors.NewFileError(dir, err)
	}

	for modDir := abs; ; {
		gomod := filepath.Join(modDir, "go.mod")
		data, err := os.ReadFile(gomod)
		switch {
		case err == nil:
			module := modfile.ModulePath(data)
			if module == "" {
				return "", mvcerrors.NewUnexpectedNode("no module directive").WithFile(gomod)
			}
			rel, err := filepath.Rel(modDir, abs)
			if err != nil {
				return "", mvcerrors.NewFileError(dir, err)
			}
			if rel == "." {
				return module, nil
			}
			return path.Join(module, filepath.ToSlash(rel)), nil
		case !errors.Is(err, os.ErrNotExist):
			return "", mvcerrors.NewFileError(gomod, err)
		}

		parent := filepath.Dir(modDir)
		if parent == modDir {
			return "", mvcerrors.NewFileError(dir, errors.New("no go.mod found; set import_path"))
		}
		modDir = parent
	}
}

// DetectPackage returns the package name declared by the Go files in dir, or
// "" when there are none. Test files are ignored.
func DetectPackage(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	fset := token.NewFileSet()
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".go" || strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.PackageClauseOnly)
		if err != nil {
			continue
		}
		return f.Name.Name
	}

	return ""
}

// PackageName derives a valid package name from a directory path:
// "my-app" becomes "myapp".
func PackageName(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}

	var b strings.Builder
	for _, r := range strings.ToLower(filepath.Base(abs)) {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}

	name := b.String()
	switch {
	case name == "":
		return "app"
	case unicode.IsDigit([]rune(name)[0]):
		return "app" + name
	case token.IsKeyword(name):
		return name + "pkg"
	}
	return name
}
