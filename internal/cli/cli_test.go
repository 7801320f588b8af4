package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/swproxy/strapi-webhook-proxy/internal/config"
	"github.com/swproxy/strapi-webhook-proxy/internal/prompt"
	"github.com/swproxy/strapi-webhook-proxy/internal/report"
	"github.com/swproxy/strapi-webhook-proxy/internal/setup"
)

const commentedIndex = `// import type { Core } from '@strapi/strapi';

export default {
  register(/* { strapi }: { strapi: Core.Strapi } */) {},
  bootstrap(/* { strapi }: { strapi: Core.Strapi } */) {},
};
`

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"dependencies":{"@strapi/strapi":"^5.4.0"}}`)
	writeFile(t, dir, "src/index.ts", commentedIndex)
	return dir
}

func TestDetectProject(t *testing.T) {
	var buf bytes.Buffer
	if err := detectProject(report.New(&buf, true), newProject(t)); err != nil {
		t.Fatalf("detectProject() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Strapi project detected", "@strapi/strapi: ^5.4.0", "lowest admitted version: 5.4.0", filepath.Join("src", "index.ts")} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDetectProject_NotStrapi(t *testing.T) {
	var buf bytes.Buffer
	err := detectProject(report.New(&buf, true), t.TempDir())
	if !errors.Is(err, setup.ErrNotStrapiProject) {
		t.Fatalf("detectProject() error = %v, want ErrNotStrapiProject", err)
	}
	if !strings.Contains(buf.String(), "package.json not found") {
		t.Errorf("output missing reason:\n%s", buf.String())
	}
}

func TestPatchProject_DryRun(t *testing.T) {
	dir := newProject(t)
	var buf bytes.Buffer

	if err := patchProject(context.Background(), &buf, report.New(&buf, true), dir, true); err != nil {
		t.Fatalf("patchProject() error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "await setUpGithubWebhook(strapi);") {
		t.Errorf("dry run did not print patched text:\n%s", out)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "src", "index.ts"))
	if string(data) != commentedIndex {
		t.Error("dry run modified src/index.ts")
	}
}

func TestPatchProject_Writes(t *testing.T) {
	dir := newProject(t)
	var buf bytes.Buffer

	if err := patchProject(context.Background(), &buf, report.New(&buf, true), dir, false); err != nil {
		t.Fatalf("patchProject() error: %v", err)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "src", "index.ts"))
	if !strings.Contains(string(data), "await setUpGithubWebhook(strapi);") {
		t.Errorf("index.ts not patched:\n%s", data)
	}
	if strings.Contains(buf.String(), "export default") {
		t.Error("non dry run printed the file")
	}
}

func TestPatchProject_NotStrapi(t *testing.T) {
	var buf bytes.Buffer
	err := patchProject(context.Background(), &buf, report.New(&buf, true), t.TempDir(), false)
	if !errors.Is(err, setup.ErrNotStrapiProject) {
		t.Errorf("patchProject() error = %v, want ErrNotStrapiProject", err)
	}
}

func TestShowStatus(t *testing.T) {
	dir := newProject(t)

	var before bytes.Buffer
	if err := showStatus(report.New(&before, true), dir, false); err != nil {
		t.Fatalf("showStatus() error: %v", err)
	}
	for _, want := range []string{
		filepath.Join("src", "config.ts") + " is missing",
		".env not found",
		"bootstrap hook not patched yet",
	} {
		if !strings.Contains(before.String(), want) {
			t.Errorf("status before setup missing %q:\n%s", want, before.String())
		}
	}

	opts := setupOptions(dir, config.Settings{Events: []string{"entry.publish"}, SkipInstall: true, NoColor: true}, nil, &bytes.Buffer{})
	if _, err := setup.Run(context.Background(), opts); err != nil {
		t.Fatalf("setup.Run() error: %v", err)
	}

	var after bytes.Buffer
	if err := showStatus(report.New(&after, true), dir, false); err != nil {
		t.Fatalf("showStatus() error: %v", err)
	}
	out := after.String()
	for _, want := range []string{
		"✅ " + filepath.Join("src", "config.ts"),
		"GITHUB_PAT still holds a placeholder: gith***",
		"GITHUB_URL still holds a placeholder: https://api.github.com/repos/{OWNER}/{REPO}",
		"✅ GITHUB_EVENT_TYPE=strapi_triggers_github_workflow",
		"bootstrap calls setUpGithubWebhook",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("status after setup missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "is missing") {
		t.Errorf("status after setup reports missing files:\n%s", out)
	}
}

func TestSetupOptions(t *testing.T) {
	opts := setupOptions("proj", config.Settings{SkipInstall: true}, strings.NewReader(""), &bytes.Buffer{})
	if opts.Installer != nil {
		t.Error("Installer set although install is skipped")
	}
	if _, ok := opts.Prompter.(*prompt.Line); !ok {
		t.Errorf("Prompter = %T, want *prompt.Line for non-terminal input", opts.Prompter)
	}

	opts = setupOptions("proj", config.Settings{Events: []string{"entry.create"}}, nil, &bytes.Buffer{})
	if opts.Installer == nil {
		t.Error("Installer not set")
	}
	if _, ok := opts.Prompter.(prompt.Static); !ok {
		t.Errorf("Prompter = %T, want prompt.Static for preset events", opts.Prompter)
	}
}

func TestReportError(t *testing.T) {
	settings.NoColor = true
	t.Cleanup(func() { settings = config.Settings{} })

	tests := []struct {
		name string
		err  error
		want []string
	}{
		{"not strapi", fmt.Errorf("run: %w", setup.ErrNotStrapiProject), []string{
			"❌ This doesn't appear to be a Strapi project.",
			"   Please run this command from the root of your Strapi project.",
		}},
		{"cancelled", fmt.Errorf("selecting events: %w", prompt.ErrCancelled), []string{"Setup cancelled"}},
		{"other", errors.New("reading config x.yaml: boom"), []string{"❌ reading config x.yaml: boom"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			reportError(&buf, tt.err)
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output = %q, want %q", buf.String(), want)
				}
			}
		})
	}
}

func TestPrintVersion(t *testing.T) {
	buildVersion, buildCommit, buildDate = "1.2.3", "abc123", "2026-01-01"

	var buf bytes.Buffer
	if err := printVersion(&buf, true, false); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "1.2.3\n" {
		t.Errorf("short version = %q, want %q", got, "1.2.3\n")
	}

	buf.Reset()
	if err := printVersion(&buf, false, true); err != nil {
		t.Fatal(err)
	}
	var info map[string]string
	if err := json.Unmarshal(buf.Bytes(), &info); err != nil {
		t.Fatalf("json version: %v", err)
	}
	if info["commit"] != "abc123" {
		t.Errorf("commit = %q, want abc123", info["commit"])
	}

	buf.Reset()
	if err := printVersion(&buf, false, false); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "strapi-webhook-proxy version 1.2.3") {
		t.Errorf("version = %q", buf.String())
	}
}

func TestHelpMentionsRepoAndEnv(t *testing.T) {
	if !strings.Contains(rootCmd.Long, "https://github.com/swproxy/strapi-webhook-proxy") {
		t.Errorf("root help missing repository link:\n%s", rootCmd.Long)
	}
	for name, env := range map[string]string{"events": "SWP_EVENTS", "skip-install": "SWP_SKIP_INSTALL"} {
		f := setupCmd.Flags().Lookup(name)
		if f == nil {
			t.Fatalf("setup command missing --%s", name)
		}
		if !strings.Contains(f.Usage, env) {
			t.Errorf("--%s usage = %q, want it to mention %s", name, f.Usage, env)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{"setup": false, "detect": false, "patch": false, "status": false, "version": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
	for _, name := range []string{"events", "skip-install"} {
		if rootCmd.Flags().Lookup(name) == nil {
			t.Errorf("root command missing --%s", name)
		}
		if setupCmd.Flags().Lookup(name) == nil {
			t.Errorf("setup command missing --%s", name)
		}
	}
}
