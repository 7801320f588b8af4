package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/swproxy/strapi-webhook-proxy/internal/branding"
)

const fileType = "yaml"

// Keys recognized in the config file and as SWP_<KEY> variables.
const (
	KeyEvents         = "events"
	KeySkipInstall    = "skip_install"
	KeyInstallCommand = "install_command"
	KeyNoColor        = "no_color"
	KeyVerbose        = "verbose"
)

// Settings is the resolved configuration for one run.
type Settings struct {
	// Events preselects webhook events. Nil means ask interactively.
	Events         []string
	SkipInstall    bool
	InstallCommand []string
	NoColor        bool
	Verbose        bool
}

// FilePath returns the default config file path for a project directory.
func FilePath(projectDir string) string {
	return filepath.Join(projectDir, branding.ConfigName()+"."+fileType)
}

// New returns a Viper instance reading environment variables with the
// branding prefix.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file into v. An explicit file must exist; the
// default project file is optional.
func Load(v *viper.Viper, projectDir, explicitFile string) error {
	file := explicitFile
	if file == "" {
		file = FilePath(projectDir)
		if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
	}

	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config %s: %w", file, err)
	}
	return nil
}

// Resolve converts v into Settings.
func Resolve(v *viper.Viper) Settings {
	s := Settings{
		SkipInstall: v.GetBool(KeySkipInstall),
		NoColor:     v.GetBool(KeyNoColor),
		Verbose:     v.GetBool(KeyVerbose),
	}
	if v.IsSet(KeyEvents) {
		s.Events = stringList(v.Get(KeyEvents))
	}
	if v.IsSet(KeyInstallCommand) {
		s.InstallCommand = strings.Fields(strings.Join(stringList(v.Get(KeyInstallCommand)), " "))
	}
	return s
}

// stringList accepts a YAML list or a comma separated string.
func stringList(raw any) []string {
	out := []string{}
	switch val := raw.(type) {
	case string:
		sep := ","
		if !strings.Contains(val, ",") {
			sep = " "
		}
		for _, p := range strings.Split(val, sep) {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	case []string:
		for _, p := range val {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	case []any:
		for _, p := range val {
			if s := strings.TrimSpace(fmt.Sprint(p)); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
