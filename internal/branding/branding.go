// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed, so a fork only has to edit one file.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName           string `yaml:"cli_name"`
	DisplayName       string `yaml:"display_name"`
	Description       string `yaml:"description"`
	EnvPrefix         string `yaml:"env_prefix"`
	ConfigName        string `yaml:"config_name"`
	GitHubRepo        string `yaml:"github_repo"`
	DispatchEventType string `yaml:"dispatch_event_type"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:           "strapi-webhook-proxy",
			DisplayName:       "Strapi Webhook Proxy",
			Description:       "Wire Strapi webhooks to GitHub Actions workflows",
			EnvPrefix:         "SWP",
			ConfigName:        ".strapi-webhook-proxy",
			GitHubRepo:        "swproxy/strapi-webhook-proxy",
			DispatchEventType: "strapi_triggers_github_workflow",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "strapi-webhook-proxy").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// EnvPrefix returns the environment variable prefix (e.g., "SWP").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// ConfigName returns the project config file name without extension.
func ConfigName() string { load(); return defaults.ConfigName }

// GitHubRepo returns the "owner/repo" string of this tool.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// DispatchEventType returns the repository_dispatch type the generated
// controller sends and the workflow must listen for.
func DispatchEventType() string { load(); return defaults.DispatchEventType }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("events") → "SWP_EVENTS".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
