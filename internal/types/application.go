// Package types holds the application model shared by the parser and the
// code generator. The model lives for a single build invocation.
package types

import "fmt"

// Application is the root aggregate built from one scan of the controllers
// and views directories. Slice order is directory order and is preserved all
// the way into generated code.
type Application struct {
	Controllers []Controller `json:"controllers" yaml:"controllers"`
	Views       []View       `json:"views" yaml:"views"`
}

// Controller groups the routed actions declared in one controller source
// file. A controller only exists if it has at least one action.
type Controller struct {
	// Name is the file stem without the controller suffix.
	Name    string             `json:"name" yaml:"name"`
	File    string             `json:"file" yaml:"file"`
	Actions []ControllerAction `json:"actions" yaml:"actions"`
}

// ControllerAction is a single routable function.
type ControllerAction struct {
	Name        string                     `json:"name" yaml:"name"`
	Path        string                     `json:"path" yaml:"path"`
	AllowGet    bool                       `json:"allow_get" yaml:"allow_get"`
	AllowPut    bool                       `json:"allow_put" yaml:"allow_put"`
	AllowPost   bool                       `json:"allow_post" yaml:"allow_post"`
	AllowDelete bool                       `json:"allow_delete" yaml:"allow_delete"`
	Arguments   []ControllerActionArgument `json:"arguments" yaml:"arguments"`
}

// Verbs lists the allowed HTTP verbs in a fixed order.
func (a ControllerAction) Verbs() []string {
	var verbs []string
	if a.AllowGet {
		verbs = append(verbs, "GET")
	}
	if a.AllowPost {
		verbs = append(verbs, "POST")
	}
	if a.AllowPut {
		verbs = append(verbs, "PUT")
	}
	if a.AllowDelete {
		verbs = append(verbs, "DELETE")
	}
	return verbs
}

// ControllerActionArgument is one parameter of an action. Type is the type
// expression reconstructed from source text.
type ControllerActionArgument struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// View is a compiled template.
type View struct {
	// Name is the template file stem.
	Name string `json:"name" yaml:"name"`
	File string `json:"file" yaml:"file"`
	// Model is the declared model type expression; empty means the view
	// renders without a model.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`
	// UseNamespaces are the import specs declared by the view, in
	// first-seen order.
	UseNamespaces []string   `json:"use_namespaces,omitempty" yaml:"use_namespaces,omitempty"`
	Parts         []ViewPart `json:"parts" yaml:"parts"`
}

// HasModel reports whether the view declared a model type.
func (v View) HasModel() bool {
	return v.Model != ""
}

// PartKind tags a ViewPart.
type PartKind int

const (
	// PartStatic is verbatim output text.
	PartStatic PartKind = iota
	// PartCode is an expression evaluated and interpolated at render time.
	PartCode
)

// String returns the string representation of the PartKind
func (k PartKind) String() string {
	switch k {
	case PartStatic:
		return "static"
	case PartCode:
		return "code"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so the kind serializes by name.
func (k PartKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting the names
// MarshalText produces.
func (k *PartKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "static":
		*k = PartStatic
	case "code":
		*k = PartCode
	default:
		return fmt.Errorf("unknown view part kind %q", text)
	}
	return nil
}

// ViewPart is one segment of a view: static text or a code expression.
type ViewPart struct {
	Kind PartKind `json:"kind" yaml:"kind"`
	Text string   `json:"text" yaml:"text"`
}

// Static returns a static text part.
func Static(text string) ViewPart {
	return ViewPart{Kind: PartStatic, Text: text}
}

// Code returns an expression part.
func Code(expr string) ViewPart {
	return ViewPart{Kind: PartCode, Text: expr}
}
