// Package generator renders the application model back into Go source: one
// render function per view, an index per views and controllers directory,
// and the dispatch file that routes requests to actions and views.
//
// Rendering is pure; only Generate touches the file system. All output is
// formatted with goimports, which also drops imports a file does not use.
package generator

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	mvcerrors "github.com/conneroisu/mvcgen/internal/errors"
	"github.com/conneroisu/mvcgen/internal/logging"
	"github.com/conneroisu/mvcgen/internal/types"
)

// Target describes where generated code goes.
type Target struct {
	Root          string
	ControllerDir string
	ViewDir       string
	// Package overrides the package clause of the dispatch file.
	Package string
	// ImportPath overrides the import path of Root.
	ImportPath string
	Host       string
	Port       int
}

// Result summarizes one Generate call.
type Result struct {
	// Files are all generated files in write order.
	Files []string
	// Written counts files whose content changed.
	Written int
	// Removed lists stale generated view files that were deleted.
	Removed []string
}

// Generator writes generated code for an application.
type Generator struct {
	target Target
	logger logging.Logger
}

// New creates a generator for target.
func New(target Target, logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Generator{
		target: target,
		logger: logger.WithComponent("generator"),
	}
}

// Generate writes every view file, both index files and the dispatch file.
// Files whose content is unchanged are left untouched.
func (g *Generator) Generate(ctx context.Context, app *types.Application) (*Result, error) {
	viewDir := filepath.Join(g.target.Root, g.target.ViewDir)
	controllerDir := filepath.Join(g.target.Root, g.target.ControllerDir)

	if err := checkViewNames(viewDir, app.Views); err != nil {
		return nil, err
	}

	d, err := g.dispatch(controllerDir, viewDir)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	emit := func(file string, src []byte, err error) error {
		if err != nil {
			pe := mvcerrors.NewUnexpectedNode("rendering failed").WithFile(file)
			pe.Cause = err
			return pe
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		changed, err := g.write(file, src)
		if err != nil {
			return err
		}
		result.Files = append(result.Files, file)
		if changed {
			result.Written++
			g.logger.Debug(ctx, "Wrote generated file", "file", file)
		}
		return nil
	}

	keep := make(map[string]bool, len(app.Views))
	for _, view := range app.Views {
		file := filepath.Join(viewDir, view.Name+ViewFileSuffix)
		keep[file] = true
		src, err := RenderView(d.ViewsPkg, view)
		if err := emit(file, src, err); err != nil {
			return nil, err
		}
	}

	src, err := RenderViewIndex(d.ViewsPkg, app.Views)
	if err := emit(filepath.Join(viewDir, IndexFile), src, err); err != nil {
		return nil, err
	}

	src, err = RenderControllerIndex(d.ControllersPkg, app.Controllers)
	if err := emit(filepath.Join(controllerDir, IndexFile), src, err); err != nil {
		return nil, err
	}

	src, err = RenderDispatch(app, d)
	if err := emit(filepath.Join(g.target.Root, DispatchFile), src, err); err != nil {
		return nil, err
	}

	removed, err := removeStale(viewDir, keep)
	if err != nil {
		return nil, err
	}
	for _, file := range removed {
		g.logger.Debug(ctx, "Removed stale view file", "file", file)
	}
	result.Removed = removed

	return result, nil
}

// checkViewNames rejects views whose render functions would share a name in
// the views package, e.g. planet_list and planet-list.
func checkViewNames(viewDir string, views []types.View) error {
	owners := make(map[string]string, len(views))
	for _, view := range views {
		id := Identifier(view.Name)
		if first, ok := owners[id]; ok {
			return mvcerrors.NewUnexpectedNode(
				fmt.Sprintf("views %s and %s both render as %s", first, view.Name, id),
			).WithFile(filepath.Join(viewDir, view.Name+ViewFileSuffix))
		}
		owners[id] = view.Name
	}
	return nil
}

// dispatch resolves package names and import paths for the target.
func (g *Generator) dispatch(controllerDir, viewDir string) (Dispatch, error) {
	importPath := g.target.ImportPath
	if importPath == "" {
		var err error
		if importPath, err = ResolveImportPath(g.target.Root); err != nil {
			return Dispatch{}, err
		}
	}

	pkg := g.target.Package
	if pkg == "" {
		pkg = packageOf(g.target.Root)
	}

	return Dispatch{
		Package:           pkg,
		ControllersImport: path.Join(importPath, filepath.ToSlash(g.target.ControllerDir)),
		ControllersPkg:    packageOf(controllerDir),
		ViewsImport:       path.Join(importPath, filepath.ToSlash(g.target.ViewDir)),
		ViewsPkg:          packageOf(viewDir),
		Host:              g.target.Host,
		Port:              g.target.Port,
	}, nil
}

// packageOf returns the package declared in dir, falling back to a name
// derived from dir.
func packageOf(dir string) string {
	if pkg := DetectPackage(dir); pkg != "" {
		return pkg
	}
	return PackageName(dir)
}

// write formats src and stores it at file unless the file already holds the
// same bytes.
func (g *Generator) write(file string, src []byte) (bool, error) {
	formatted, err := Format(file, src)
	if err != nil {
		return false, err
	}

	if existing, err := os.ReadFile(file); err == nil && bytes.Equal(existing, formatted) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return false, mvcerrors.NewFileError(file, err)
	}
	if err := os.WriteFile(file, formatted, 0o644); err != nil {
		return false, mvcerrors.NewFileError(file, err)
	}
	return true, nil
}

// removeStale deletes generated view files in dir that no longer have a view.
// Only files starting with Header are considered.
func removeStale(dir string, keep map[string]bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, mvcerrors.NewFileError(dir, err)
	}

	var removed []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == IndexFile || !strings.HasSuffix(name, ViewFileSuffix) {
			continue
		}
		file := filepath.Join(dir, name)
		if keep[file] {
			continue
		}
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, mvcerrors.NewFileError(file, err)
		}
		if !bytes.HasPrefix(content, []byte(Header)) {
			continue
		}
		if err := os.Remove(file); err != nil {
			return nil, mvcerrors.NewFileError(file, err)
		}
		removed = append(removed, file)
	}

	return removed, nil
}
