package scaffold

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/swproxy/strapi-webhook-proxy/internal/logging"
	"github.com/swproxy/strapi-webhook-proxy/internal/manifest"
	"github.com/swproxy/strapi-webhook-proxy/internal/outcome"
)

// StepName identifies materialization outcomes.
const StepName = "materialize"

// EventsPlaceholder is replaced by the selected events in the webhook template.
const EventsPlaceholder = "events: [],"

// Materialize copies one manifest entry from fsys into projectRoot. The
// destination's parent directories are created as needed. If the destination
// already exists the entry is skipped.
func Materialize(ctx context.Context, fsys fs.FS, projectRoot string, e manifest.Entry, events []string) outcome.Outcome {
	log := logging.Get(ctx)
	rel := filepath.FromSlash(e.Dest)
	dest := filepath.Join(projectRoot, rel)

	if _, err := os.Lstat(dest); err == nil {
		return outcome.NewWarning(StepName, rel, "File already exists, skipping: %s", rel)
	}

	content, err := fs.ReadFile(fsys, e.Src)
	if err != nil {
		return outcome.NewFailed(StepName, rel, fmt.Errorf("reading template %s: %w", e.Src, err))
	}

	if e.HasTransform() {
		switch e.Transform {
		case manifest.TransformEvents:
			rendered, err := RenderEvents(string(content), events)
			if err != nil {
				return outcome.NewFailed(StepName, rel, err)
			}
			if !strings.Contains(string(content), EventsPlaceholder) {
				log.Warn("template has no events placeholder", "template", e.Src)
			}
			content = []byte(rendered)
		default:
			return outcome.NewFailed(StepName, rel, fmt.Errorf("unknown transform %q for %s (want one of: %s)",
				e.Transform, e.Src, strings.Join(manifest.ValidTransforms, ", ")))
		}
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return outcome.NewFailed(StepName, rel, fmt.Errorf("creating directory for %s: %w", rel, err))
	}

	if err := writeExclusive(dest, content); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return outcome.NewWarning(StepName, rel, "File already exists, skipping: %s", rel)
		}
		return outcome.NewFailed(StepName, rel, fmt.Errorf("writing %s: %w", rel, err))
	}

	log.Debug("materialized template", "src", e.Src, "dest", dest, "bytes", len(content))
	return outcome.NewApplied(StepName, rel, "Created: %s", rel)
}

// MaterializeAll materializes every entry of m. A failed entry does not stop
// the remaining ones.
func MaterializeAll(ctx context.Context, fsys fs.FS, projectRoot string, m *manifest.Manifest, events []string) []outcome.Outcome {
	outs := make([]outcome.Outcome, 0, len(m.Files))
	for _, e := range m.Files {
		outs = append(outs, Materialize(ctx, fsys, projectRoot, e, events))
	}
	return outs
}

// RenderEvents replaces the first EventsPlaceholder in content with the
// compact JSON array of events, e.g. `events: ["entry.publish"],`.
func RenderEvents(content string, events []string) (string, error) {
	list, err := EventsJSON(events)
	if err != nil {
		return "", err
	}
	return strings.Replace(content, EventsPlaceholder, "events: "+list+",", 1), nil
}

// EventsJSON encodes events the way JSON.stringify does: no whitespace, no
// HTML escaping, and [] for an empty selection.
func EventsJSON(events []string) (string, error) {
	if events == nil {
		events = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(events); err != nil {
		return "", fmt.Errorf("encoding events: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// writeExclusive creates path and fails with fs.ErrExist if it is already there.
func writeExclusive(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
