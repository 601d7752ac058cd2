package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestControllerActionVerbs(t *testing.T) {
	assert.Nil(t, ControllerAction{}.Verbs())
	assert.Equal(t, []string{"GET", "POST", "PUT", "DELETE"},
		ControllerAction{AllowGet: true, AllowPut: true, AllowPost: true, AllowDelete: true}.Verbs())
	assert.Equal(t, []string{"DELETE"}, ControllerAction{AllowDelete: true}.Verbs())
}

func TestViewParts(t *testing.T) {
	view := View{Name: "index", Parts: []ViewPart{Static("<p>"), Code("model"), Static("</p>")}}
	assert.False(t, view.HasModel())
	assert.Equal(t, "unknown", PartKind(7).String())

	data, err := json.Marshal(view.Parts[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"code","text":"model"}`, string(data))
}

func TestApplicationRoundTrip(t *testing.T) {
	app := Application{
		Controllers: []Controller{{
			Name: "home",
			File: "controllers/home_controller.go",
			Actions: []ControllerAction{{
				Name:      "Greet",
				Path:      "/greet",
				AllowGet:  true,
				Arguments: []ControllerActionArgument{{Name: "name", Type: "string"}},
			}},
		}},
		Views: []View{{
			Name:  "greeting",
			File:  "views/greeting.html",
			Model: "string",
			Parts: []ViewPart{Static("<p>"), Code("model"), Static("</p>")},
		}},
	}

	t.Run("json", func(t *testing.T) {
		data, err := json.Marshal(app)
		require.NoError(t, err)

		var got Application
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, app, got)
	})

	t.Run("yaml", func(t *testing.T) {
		data, err := yaml.Marshal(app)
		require.NoError(t, err)

		var got Application
		require.NoError(t, yaml.Unmarshal(data, &got))
		assert.Equal(t, app, got)
	})
}

func TestPartKindUnmarshalText(t *testing.T) {
	var k PartKind
	require.NoError(t, k.UnmarshalText([]byte("code")))
	assert.Equal(t, PartCode, k)
	require.NoError(t, k.UnmarshalText([]byte("static")))
	assert.Equal(t, PartStatic, k)

	err := k.UnmarshalText([]byte("unknown"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown view part kind "unknown"`)

	var part ViewPart
	err = json.Unmarshal([]byte(`{"kind":"markup","text":"x"}`), &part)
	require.Error(t, err)
}
