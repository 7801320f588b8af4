package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/swproxy/strapi-webhook-proxy/internal/logging"
	"github.com/swproxy/strapi-webhook-proxy/internal/outcome"
)

// StepName identifies bootstrap outcomes.
const StepName = "bootstrap"

// IndexFile is the startup file patched, relative to the project root.
var IndexFile = filepath.Join("src", "index.ts")

// PatchFile patches projectRoot/src/index.ts in place. The file is written
// only when Patch modified it; with dryRun it is never written.
func PatchFile(ctx context.Context, projectRoot string, dryRun bool) (Result, outcome.Outcome) {
	log := logging.Get(ctx)
	path := filepath.Join(projectRoot, IndexFile)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		o := outcome.NewWarning(StepName, IndexFile,
			"%s not found. Please ensure you call setUpGithubWebhook in your bootstrap function.", IndexFile)
		return Result{}, o
	}
	if err != nil {
		return Result{}, outcome.NewFailed(StepName, IndexFile, fmt.Errorf("reading %s: %w", IndexFile, err))
	}

	res := Patch(string(data))
	log.Debug("classified bootstrap hook", "path", path, "match", res.Match.String(),
		"import_added", res.ImportAdded, "core_uncommented", res.CoreUncommented)

	switch res.Match {
	case MatchAlreadyPatched:
		if !HasImport(res.Text) {
			o := outcome.NewWarning(StepName, IndexFile, "%s calls setUpGithubWebhook but does not import it.", IndexFile)
			o.Details = []string{"Please manually add:", "   " + ImportLine}
			return res, o
		}
		return res, outcome.NewSkipped(StepName, IndexFile, "%s already seems to contain the webhook setup.", IndexFile)
	case MatchNone:
		o := outcome.NewWarning(StepName, IndexFile, "Could not automatically update %s (pattern not matched).", IndexFile)
		o.Details = ManualInstructions()
		return res, o
	}

	if !res.Modified {
		return res, outcome.NewSkipped(StepName, IndexFile, "%s needs no changes.", IndexFile)
	}

	if dryRun {
		return res, outcome.NewApplied(StepName, IndexFile, "Would update %s: inject setUpGithubWebhook into bootstrap (dry run)", IndexFile)
	}

	info, err := os.Stat(path)
	if err != nil {
		return res, outcome.NewFailed(StepName, IndexFile, fmt.Errorf("stat %s: %w", IndexFile, err))
	}
	if err := os.WriteFile(path, []byte(res.Text), info.Mode().Perm()); err != nil {
		return res, outcome.NewFailed(StepName, IndexFile, fmt.Errorf("writing %s: %w", IndexFile, err))
	}
	return res, outcome.NewApplied(StepName, IndexFile, "Updated %s: injected setUpGithubWebhook into bootstrap", IndexFile)
}
