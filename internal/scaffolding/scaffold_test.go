package scaffolding

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/mvcgen/internal/generator"
	"github.com/conneroisu/mvcgen/internal/parser"
	"github.com/conneroisu/mvcgen/internal/types"
)

func newDirs(t *testing.T) parser.Dirs {
	t.Helper()
	return parser.Dirs{Root: t.TempDir(), Controllers: "controllers", Views: "views"}
}

func TestProjectBuilds(t *testing.T) {
	dirs := newDirs(t)
	require.NoError(t, os.WriteFile(filepath.Join(dirs.Root, "go.mod"), []byte("module example.com/starter\n\ngo 1.24\n"), 0o644))

	created, err := New(dirs).Project()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dirs.Root, ".mvcgen.yml"),
		filepath.Join(dirs.Root, "main.go"),
		filepath.Join(dirs.ControllerPath(), "home_controller.go"),
		filepath.Join(dirs.ViewPath(), "index.html"),
	}, created)

	app, err := parser.New(nil, nil).Parse(context.Background(), dirs)
	require.NoError(t, err)
	require.Len(t, app.Controllers, 1)
	action := app.Controllers[0].Actions[0]
	assert.Equal(t, "Index", action.Name)
	assert.Equal(t, "/", action.Path)
	assert.Equal(t, []string{"GET"}, action.Verbs())
	require.Len(t, app.Views, 1)
	assert.Equal(t, "index", app.Views[0].Name)
	assert.False(t, app.Views[0].HasModel())

	target := generator.Target{Root: dirs.Root, ControllerDir: "controllers", ViewDir: "views", Host: "localhost", Port: 8181}
	_, err = generator.New(target, nil).Generate(context.Background(), app)
	require.NoError(t, err)

	again, err := New(dirs).Project()
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestController(t *testing.T) {
	dirs := newDirs(t)
	s := New(dirs)

	file, err := s.Controller(ControllerOptions{Name: "planets", Action: "List"})
	require.NoError(t, err)

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(content), "package controllers\n")
	assert.Contains(t, string(content), `//mvc:http_url("/planets"), http_get`)
	assert.Contains(t, string(content), "func List() (mvc.ViewResult, error) {")

	_, err = s.Controller(ControllerOptions{Name: "planets"})
	assert.ErrorIs(t, err, ErrExists)

	_, err = s.Controller(ControllerOptions{Name: "x", Action: "lower"})
	assert.ErrorContains(t, err, "exported")

	_, err = s.Controller(ControllerOptions{Name: "y", Path: "nope"})
	assert.ErrorContains(t, err, "must start with /")
}

func TestControllerKeepsExistingPackage(t *testing.T) {
	dirs := newDirs(t)
	require.NoError(t, os.MkdirAll(dirs.ControllerPath(), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dirs.ControllerPath(), "shared.go"), []byte("package handlers\n"), 0o644))

	file, err := New(dirs).Controller(ControllerOptions{Name: "home"})
	require.NoError(t, err)

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(content), "package handlers\n")
}

func TestView(t *testing.T) {
	dirs := newDirs(t)

	file, err := New(dirs).View(ViewOptions{Name: "planet", Model: "*models.Planet"})
	require.NoError(t, err)

	content, err := os.ReadFile(file)
	require.NoError(t, err)

	view, err := parser.CompileView(parser.ViewName(file), string(content))
	require.NoError(t, err)
	assert.Equal(t, "*models.Planet", view.Model)
	assert.Contains(t, view.Parts, types.Code("model"))
}

func TestValidateName(t *testing.T) {
	valid := []string{"home", "Planet_list", "v2"}
	for _, name := range valid {
		assert.NoError(t, ValidateName(name), name)
	}

	invalid := []string{"", "2fast", "with-dash", "a/b", "mod", "home_controller"}
	for _, name := range invalid {
		assert.Error(t, ValidateName(name), name)
	}
}
