// Package scaffolding writes starter controllers, views and projects that
// mvcgen can build right away.
package scaffolding

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	mvcerrors "github.com/conneroisu/mvcgen/internal/errors"
	"github.com/conneroisu/mvcgen/internal/generator"
	"github.com/conneroisu/mvcgen/internal/parser"
)

// ErrExists is returned instead of overwriting a file.
var ErrExists = errors.New("file already exists")

// Scaffolder creates source files below a project root.
type Scaffolder struct {
	dirs parser.Dirs
}

// New creates a scaffolder for dirs.
func New(dirs parser.Dirs) *Scaffolder {
	return &Scaffolder{dirs: dirs}
}

// ControllerOptions configures a new controller.
type ControllerOptions struct {
	// Name is the controller name, the file stem without the suffix.
	Name string
	// Action is the routed function. Defaults to Index.
	Action string
	// Path is the routed URL path. Defaults to "/<name>".
	Path string
}

// ViewOptions configures a new view.
type ViewOptions struct {
	Name string
	// Model is an optional model type expression.
	Model string
}

// Controller writes <controllers>/<name>_controller.go and returns its path.
func (s *Scaffolder) Controller(opts ControllerOptions) (string, error) {
	if err := ValidateName(opts.Name); err != nil {
		return "", err
	}
	if opts.Action == "" {
		opts.Action = "Index"
	}
	if !isExported(opts.Action) {
		return "", fmt.Errorf("action %q must be an exported Go identifier", opts.Action)
	}
	if opts.Path == "" {
		opts.Path = "/" + opts.Name
	}
	if !strings.HasPrefix(opts.Path, "/") {
		return "", fmt.Errorf("path %q must start with /", opts.Path)
	}

	dir := s.dirs.ControllerPath()
	pkg := generator.DetectPackage(dir)
	if pkg == "" {
		pkg = generator.PackageName(dir)
	}

	file := filepath.Join(dir, opts.Name+parser.ControllerSuffix+".go")
	return file, write(file, controllerTemplate, map[string]string{
		"Package": pkg,
		"Runtime": generator.RuntimeImportPath,
		"Action":  opts.Action,
		"Path":    opts.Path,
		"View":    strings.ToLower(opts.Action),
	})
}

// View writes <views>/<name>.html and returns its path.
func (s *Scaffolder) View(opts ViewOptions) (string, error) {
	if err := ValidateName(opts.Name); err != nil {
		return "", err
	}

	file := filepath.Join(s.dirs.ViewPath(), opts.Name+parser.ViewExtension)
	return file, write(file, viewTemplate, map[string]string{
		"Title": opts.Name,
		"Model": opts.Model,
	})
}

// Project lays out a runnable application in the root directory: a
// configuration file, a main package calling the generated Run function, a
// home controller and its index view. Existing files are kept.
func (s *Scaffolder) Project() ([]string, error) {
	var created []string
	keep := func(file string, err error) error {
		if errors.Is(err, ErrExists) {
			return nil
		}
		if err == nil {
			created = append(created, file)
		}
		return err
	}

	steps := []func() (string, error){
		func() (string, error) {
			file := filepath.Join(s.dirs.Root, ".mvcgen.yml")
			return file, write(file, configTemplate, map[string]string{
				"ControllerDir": s.dirs.Controllers,
				"ViewDir":       s.dirs.Views,
			})
		},
		func() (string, error) {
			file := filepath.Join(s.dirs.Root, "main.go")
			return file, write(file, mainTemplate, nil)
		},
		func() (string, error) {
			return s.Controller(ControllerOptions{Name: "home", Path: "/"})
		},
		func() (string, error) {
			return s.View(ViewOptions{Name: "index"})
		},
	}
	for _, step := range steps {
		if err := keep(step()); err != nil {
			return created, err
		}
	}
	return created, nil
}

// ValidateName checks that name can be a controller or view file stem.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return fmt.Errorf("name %q must start with a letter and contain only letters, digits and underscores", name)
	}
	if strings.HasSuffix(name, parser.ControllerSuffix) {
		return fmt.Errorf("name %q must not end with %s", name, parser.ControllerSuffix)
	}
	if name == "mod" {
		return fmt.Errorf("name %q collides with the generated index file", name)
	}
	return nil
}

func isExported(name string) bool {
	for i, r := range name {
		if i == 0 && !unicode.IsUpper(r) {
			return false
		}
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return name != ""
}

func write(file string, tmpl *template.Template, data any) error {
	if _, err := os.Stat(file); err == nil {
		return fmt.Errorf("%s: %w", file, ErrExists)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return mvcerrors.NewFileError(file, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("rendering %s: %w", file, err)
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return mvcerrors.NewFileError(file, err)
	}
	if err := os.WriteFile(file, buf.Bytes(), 0o644); err != nil {
		return mvcerrors.NewFileError(file, err)
	}
	return nil
}
