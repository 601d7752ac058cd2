package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.RootDir)
	assert.Equal(t, "controllers", cfg.ControllerDir)
	assert.Equal(t, "views", cfg.ViewDir)
	assert.Empty(t, cfg.Package)
	assert.Empty(t, cfg.ImportPath)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8181, cfg.Server.Port)
}

func TestLoadGlobal(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("view_dir", "templates")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "templates", cfg.ViewDir)
	assert.Equal(t, "controllers", cfg.ControllerDir)
}

func TestLoadFromYAML(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
root_dir: ./app/
controller_dir: handlers/
view_dir: pages
package: web
import_path: example.com/site/app
server:
  host: 0.0.0.0
  port: 9000
`)))

	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, "app", cfg.RootDir)
	assert.Equal(t, "handlers", cfg.ControllerDir)
	assert.Equal(t, "pages", cfg.ViewDir)
	assert.Equal(t, "web", cfg.Package)
	assert.Equal(t, "example.com/site/app", cfg.ImportPath)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("MVCGEN_SERVER_PORT", "7000")
	t.Setenv("MVCGEN_VIEW_DIR", "html")

	v := viper.New()
	v.SetEnvPrefix("MVCGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "html", cfg.ViewDir)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
		want string
	}{
		{"nested controller dir", "controller_dir", "a/b", "Config.ControllerDir (dirname)"},
		{"parent view dir", "view_dir", "..", "Config.ViewDir (dirname)"},
		{"empty view dir", "view_dir", "", "Config.ViewDir (required)"},
		{"bad package", "package", "my-app", "Config.Package (goident)"},
		{"port too large", "server.port", 70000, "Config.Server.Port (lte)"},
		{"negative port", "server.port", -1, "Config.Server.Port (gte)"},
		{"bad host", "server.host", "not a host", "Config.Server.Host (hostname_rfc1123|ip)"},
		{"import path with space", "import_path", "a b", "Config.ImportPath (excludesall)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.val)

			_, err := LoadFrom(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration: validation failed on")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadUndecodable(t *testing.T) {
	v := viper.New()
	v.Set("server.port", "not-a-port")

	_, err := LoadFrom(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode configuration")
}

func TestValidateReportsEveryField(t *testing.T) {
	cfg := &Config{RootDir: ".", ControllerDir: "a/b", ViewDir: "c/d", Server: ServerConfig{Host: "localhost"}}

	err := Validate(cfg)
	require.Error(t, err)
	assert.Equal(t, "validation failed on Config.ControllerDir (dirname), Config.ViewDir (dirname)", err.Error())
}

func TestConversions(t *testing.T) {
	cfg := &Config{
		RootDir:       "site",
		ControllerDir: "c",
		ViewDir:       "v",
		Package:       "site",
		ImportPath:    "example.com/site",
		Server:        ServerConfig{Host: "127.0.0.1", Port: 80},
	}

	dirs := cfg.Dirs()
	assert.Equal(t, "site", dirs.Root)
	assert.Equal(t, "c", dirs.Controllers)
	assert.Equal(t, "v", dirs.Views)

	target := cfg.Target()
	assert.Equal(t, "site", target.Root)
	assert.Equal(t, "c", target.ControllerDir)
	assert.Equal(t, "v", target.ViewDir)
	assert.Equal(t, "site", target.Package)
	assert.Equal(t, "example.com/site", target.ImportPath)
	assert.Equal(t, "127.0.0.1", target.Host)
	assert.Equal(t, 80, target.Port)
}

func TestIsIdent(t *testing.T) {
	assert.True(t, isIdent("main"))
	assert.True(t, isIdent("_x9"))
	assert.False(t, isIdent("9x"))
	assert.False(t, isIdent(""))
	assert.False(t, isIdent("a.b"))
}
