package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"cli name", CLIName(), "strapi-webhook-proxy"},
		{"env prefix", EnvPrefix(), "SWP"},
		{"github repo", GitHubRepo(), "swproxy/strapi-webhook-proxy"},
		{"dispatch type", DispatchEventType(), "strapi_triggers_github_workflow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestEnvVar(t *testing.T) {
	for suffix, want := range map[string]string{
		"events":       "SWP_EVENTS",
		"skip_install": "SWP_SKIP_INSTALL",
	} {
		if got := EnvVar(suffix); got != want {
			t.Errorf("EnvVar(%q) = %q, want %q", suffix, got, want)
		}
	}
}
