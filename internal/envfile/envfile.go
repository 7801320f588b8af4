// Package envfile adds the GitHub webhook variables to a project's .env
// file and reads them back for status reports.
package envfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/swproxy/strapi-webhook-proxy/internal/branding"
	"github.com/swproxy/strapi-webhook-proxy/internal/logging"
	"github.com/swproxy/strapi-webhook-proxy/internal/outcome"
)

const (
	// FileName is the env file at the project root.
	FileName = ".env"

	// MarkerVar is the variable whose presence means the block was already added.
	MarkerVar = "GITHUB_PAT"

	// StepName identifies env outcomes.
	StepName = "env"
)

// Vars are the variables the block defines, in file order.
var Vars = []string{"GITHUB_PAT", "GITHUB_URL", "GITHUB_EVENT_TYPE"}

// EnvEntry represents a single key-value pair from a .env file.
type EnvEntry struct {
	Key   string
	Value string
}

// Block returns the text appended to the env file.
func Block() string {
	return fmt.Sprintf(`
# GitHub Webhook Proxy
GITHUB_PAT=github_pat_{TOKEN}
GITHUB_URL=https://api.github.com/repos/{OWNER}/{REPO}
GITHUB_EVENT_TYPE=%s
`, branding.DispatchEventType())
}

// Ensure makes sure projectRoot/.env defines the webhook variables. The file
// is created when missing and appended to when MarkerVar is absent; existing
// content is never rewritten.
func Ensure(ctx context.Context, projectRoot string) outcome.Outcome {
	path := filepath.Join(projectRoot, FileName)

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := os.WriteFile(path, []byte(Block()), 0644); err != nil {
			return outcome.NewFailed(StepName, FileName, fmt.Errorf("creating %s: %w", FileName, err))
		}
		return outcome.NewApplied(StepName, FileName, "Created %s with GitHub variables", FileName)
	case err != nil:
		return outcome.NewFailed(StepName, FileName, fmt.Errorf("reading %s: %w", FileName, err))
	}

	if strings.Contains(string(data), MarkerVar) {
		logging.Get(ctx).Debug("env marker present", "path", path, "marker", MarkerVar)
		return outcome.NewSkipped(StepName, FileName, "%s already contains GitHub variables", FileName)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return outcome.NewFailed(StepName, FileName, fmt.Errorf("opening %s: %w", FileName, err))
	}
	if _, err := f.WriteString(Block()); err != nil {
		f.Close()
		return outcome.NewFailed(StepName, FileName, fmt.Errorf("appending to %s: %w", FileName, err))
	}
	if err := f.Close(); err != nil {
		return outcome.NewFailed(StepName, FileName, fmt.Errorf("closing %s: %w", FileName, err))
	}
	return outcome.NewApplied(StepName, FileName, "Updated %s with GitHub variables", FileName)
}

// ParseEnvFile reads a .env file and returns key-value entries.
// It skips blank lines and lines starting with #.
func ParseEnvFile(path string) ([]EnvEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer f.Close()

	var entries []EnvEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		entries = append(entries, EnvEntry{
			Key:   strings.TrimSpace(key),
			Value: strings.TrimSpace(value),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	return entries, nil
}

// VarStatus describes one webhook variable as found in the env file.
type VarStatus struct {
	Key         string
	Value       string
	Defined     bool
	Placeholder bool // still holds a {TOKEN}/{OWNER}/{REPO} style placeholder
}

var placeholderPattern = regexp.MustCompile(`\{[A-Z_]+\}`)

// Inspect reports the state of every variable in Vars. The last definition
// of a key wins, as in dotenv loaders.
func Inspect(entries []EnvEntry) []VarStatus {
	byKey := make(map[string]string, len(entries))
	for _, e := range entries {
		byKey[e.Key] = e.Value
	}

	out := make([]VarStatus, 0, len(Vars))
	for _, key := range Vars {
		v, ok := byKey[key]
		out = append(out, VarStatus{
			Key:         key,
			Value:       v,
			Defined:     ok && v != "",
			Placeholder: placeholderPattern.MatchString(v),
		})
	}
	return out
}

// sensitivePatterns are substrings that indicate a value should be redacted.
var sensitivePatterns = []string{"TOKEN", "SECRET", "PASSWORD", "KEY", "CREDENTIAL", "PAT"}

// RedactValue returns a redacted version of value if the key name contains
// a sensitive pattern (case-insensitive substring match).
// Values with 4+ chars show the first 4 chars + "***".
// Values with fewer than 4 chars are fully redacted as "***".
func RedactValue(key, value string) string {
	upper := strings.ToUpper(key)
	for _, pattern := range sensitivePatterns {
		if strings.Contains(upper, pattern) {
			if len(value) >= 4 {
				return value[:4] + "***"
			}
			return "***"
		}
	}
	return value
}
