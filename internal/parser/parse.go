// Package parser builds the application model from controller sources and
// view templates.
//
// Controllers are recovered from the token stream of internal/scanner without
// building a syntax tree: routing directives are found by walking backward
// from each func keyword over a closed set of token kinds, and parameter
// lists are read by delimiter matching. Views are split into static text and
// code spans directly on their raw text.
package parser

import (
	"context"
	"os"
	"path/filepath"

	mvcerrors "github.com/conneroisu/mvcgen/internal/errors"
	"github.com/conneroisu/mvcgen/internal/logging"
	"github.com/conneroisu/mvcgen/internal/scanner"
	"github.com/conneroisu/mvcgen/internal/types"
)

// Dirs locates the sources of one application.
type Dirs struct {
	// Root is the application root directory.
	Root string
	// Controllers and Views are relative to Root.
	Controllers string
	Views       string
}

// ControllerPath returns the controllers directory.
func (d Dirs) ControllerPath() string {
	return filepath.Join(d.Root, d.Controllers)
}

// ViewPath returns the views directory.
func (d Dirs) ViewPath() string {
	return filepath.Join(d.Root, d.Views)
}

// Parser turns source directories into an application model.
type Parser struct {
	logger logging.Logger
	cache  *Cache
}

// New creates a parser. cache may be nil, in which case every file is parsed
// on every call.
func New(logger logging.Logger, cache *Cache) *Parser {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Parser{
		logger: logger.WithComponent("parser"),
		cache:  cache,
	}
}

// Parse reads every controller, then every view, in lexical file order. The
// first error aborts the parse.
func (p *Parser) Parse(ctx context.Context, dirs Dirs) (*types.Application, error) {
	app := &types.Application{
		Controllers: []types.Controller{},
		Views:       []types.View{},
	}

	controllerFiles, err := listFiles(dirs.ControllerPath(), IsControllerFile)
	if err != nil {
		return nil, err
	}
	for _, path := range controllerFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := p.parseController(ctx, app, path); err != nil {
			return nil, err
		}
	}

	viewFiles, err := listFiles(dirs.ViewPath(), IsViewFile)
	if err != nil {
		return nil, err
	}
	for _, path := range viewFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := p.parseView(ctx, app, path); err != nil {
			return nil, err
		}
	}

	return app, nil
}

func (p *Parser) parseController(ctx context.Context, app *types.Application, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return mvcerrors.NewFileError(path, err)
	}

	var sum uint32
	if p.cache != nil {
		sum = p.cache.Checksum(src)
		if controllers, ok := p.cache.controller(path, sum); ok {
			p.logger.Debug(ctx, "Loaded controller from cache", "file", path)
			app.Controllers = append(app.Controllers, controllers...)
			return nil
		}
	}

	tokens, err := scanner.Scan(path, src)
	if err != nil {
		return err
	}

	parsed := &types.Application{}
	if err := ParseController(parsed, tokens, ControllerName(path), path); err != nil {
		return err
	}
	p.cache.putController(path, sum, parsed.Controllers)

	for _, c := range parsed.Controllers {
		p.logger.Debug(ctx, "Loaded controller", "name", c.Name, "file", path, "actions", len(c.Actions))
	}
	if len(parsed.Controllers) == 0 {
		p.logger.Debug(ctx, "Skipped controller without routed actions", "file", path)
	}
	app.Controllers = append(app.Controllers, parsed.Controllers...)

	return nil
}

func (p *Parser) parseView(ctx context.Context, app *types.Application, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return mvcerrors.NewFileError(path, err)
	}

	var sum uint32
	if p.cache != nil {
		sum = p.cache.Checksum(src)
		if view, ok := p.cache.view(path, sum); ok {
			p.logger.Debug(ctx, "Loaded view from cache", "file", path)
			app.Views = append(app.Views, view)
			return nil
		}
	}

	view, err := compileViewFile(path, src)
	if err != nil {
		return err
	}
	p.cache.putView(path, sum, view)

	p.logger.Debug(ctx, "Loaded view", "name", view.Name, "file", path, "parts", len(view.Parts))
	app.Views = append(app.Views, view)

	return nil
}

// listFiles returns the regular files in dir accepted by match, sorted by
// name.
func listFiles(dir string, match func(string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, mvcerrors.NewFileError(dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !match(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	return files, nil
}
