package mvc

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrURLNotFound is returned by dispatch code when no action matches.
var ErrURLNotFound = errors.New("Url not found")

// NotFoundBody is written when the selected view does not exist or rejects
// the model.
const NotFoundBody = "<html><body><h1>Page not found</h1></body></html>"

// ViewContext carries response metadata an action may set before its view is
// rendered.
type ViewContext struct {
	// Header is merged into the response headers.
	Header http.Header
	// Status overrides the response status when non-zero.
	Status int
	// Values is free-form data shared between an action and the server.
	Values map[string]any
}

func newViewContext() *ViewContext {
	return &ViewContext{
		Header: make(http.Header),
		Values: make(map[string]any),
	}
}

// ResultKind selects which view renders an action's result.
type ResultKind int

const (
	// CurrentView renders the view named after the action.
	CurrentView ResultKind = iota
	// CurrentViewWithModel renders the view named after the action with a
	// model.
	CurrentViewWithModel
	// SpecificView renders a named view.
	SpecificView
	// SpecificViewWithModel renders a named view with a model.
	SpecificViewWithModel
)

// String returns the string representation of the ResultKind
func (k ResultKind) String() string {
	switch k {
	case CurrentView:
		return "current_view"
	case CurrentViewWithModel:
		return "current_view_with_model"
	case SpecificView:
		return "specific_view"
	case SpecificViewWithModel:
		return "specific_view_with_model"
	default:
		return fmt.Sprintf("ResultKind(%d)", int(k))
	}
}

// ViewResult is what an action returns.
type ViewResult struct {
	Kind  ResultKind
	View  string
	Model any
}

// View renders the action's own view.
func View() ViewResult {
	return ViewResult{Kind: CurrentView}
}

// ViewWithModel renders the action's own view with model.
func ViewWithModel(model any) ViewResult {
	return ViewResult{Kind: CurrentViewWithModel, Model: model}
}

// Named renders view.
func Named(view string) ViewResult {
	return ViewResult{Kind: SpecificView, View: view}
}

// NamedWithModel renders view with model.
func NamedWithModel(view string, model any) ViewResult {
	return ViewResult{Kind: SpecificViewWithModel, View: view, Model: model}
}

// HasModel reports whether the result carries a model.
func (v ViewResult) HasModel() bool {
	return v.Kind == CurrentViewWithModel || v.Kind == SpecificViewWithModel
}

// ViewName returns the view to render for an action called action.
func (v ViewResult) ViewName(action string) string {
	if v.Kind == SpecificView || v.Kind == SpecificViewWithModel {
		return v.View
	}
	return action
}

// Builder accumulates the output of a render function.
type Builder struct {
	sb strings.Builder
}

// Static appends literal template text.
func (b *Builder) Static(s string) {
	b.sb.WriteString(s)
}

// Value appends the default formatting of v. The output is not escaped.
func (b *Builder) Value(v any) {
	if s, ok := v.(string); ok {
		b.sb.WriteString(s)
		return
	}
	fmt.Fprint(&b.sb, v)
}

// String returns the rendered output.
func (b *Builder) String() string {
	return b.sb.String()
}
