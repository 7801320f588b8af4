package setup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/swproxy/strapi-webhook-proxy/internal/bootstrap"
	"github.com/swproxy/strapi-webhook-proxy/internal/branding"
	"github.com/swproxy/strapi-webhook-proxy/internal/detect"
	"github.com/swproxy/strapi-webhook-proxy/internal/envfile"
	"github.com/swproxy/strapi-webhook-proxy/internal/installer"
	"github.com/swproxy/strapi-webhook-proxy/internal/logging"
	"github.com/swproxy/strapi-webhook-proxy/internal/manifest"
	"github.com/swproxy/strapi-webhook-proxy/internal/outcome"
	"github.com/swproxy/strapi-webhook-proxy/internal/prompt"
	"github.com/swproxy/strapi-webhook-proxy/internal/report"
	"github.com/swproxy/strapi-webhook-proxy/internal/scaffold"
)

// ErrNotStrapiProject is returned before any change when Dir is not a
// Strapi project.
var ErrNotStrapiProject = errors.New("this doesn't appear to be a Strapi project")

// minStrapiMajor is the first Strapi major whose Core types the templates use.
const minStrapiMajor = 5

// Installer installs the type declarations into the project.
type Installer interface {
	Install(ctx context.Context, dir string) outcome.Outcome
}

// Options configures Run.
type Options struct {
	Dir       string
	Prompter  prompt.Prompter
	Installer Installer // nil skips the install step
	Templates fs.FS     // defaults to the embedded templates
	Printer   *report.Printer
}

// Summary collects everything a run did.
type Summary struct {
	Facts    detect.Facts
	Events   []string
	Outcomes []outcome.Outcome
}

// Failed returns the number of failed steps.
func (s *Summary) Failed() int {
	_, _, failed := outcome.Counts(s.Outcomes)
	return failed
}

// Run executes the pipeline in opts.Dir.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	log := logging.Get(ctx)
	p := opts.Printer

	facts := detect.Inspect(opts.Dir)
	log.Debug("inspected project", "dir", opts.Dir, "manifest", facts.HasManifest,
		"parsed", facts.ManifestParsed, "range", facts.StrapiRange, "entry_points", facts.EntryPoints)
	if !detect.Compatible(facts) {
		return nil, ErrNotStrapiProject
	}

	if v, err := facts.StrapiVersion(); err == nil && v.Major() < minStrapiMajor {
		p.Warn("%s %s detected; the generated files use Strapi v%d types.", detect.StrapiDependency, facts.StrapiRange, minStrapiMajor)
	}

	p.Plain("🚀 Setting up %s...", branding.DisplayName())

	events, err := opts.Prompter.Select(ctx, prompt.Events)
	if err != nil {
		return nil, fmt.Errorf("selecting events: %w", err)
	}
	log.Debug("events selected", "events", events)

	templates := opts.Templates
	if templates == nil {
		templates = scaffold.Templates()
	}
	m, err := manifest.Load(templates)
	if err != nil {
		return nil, fmt.Errorf("loading template manifest: %w", err)
	}

	s := &Summary{Facts: facts, Events: events}
	record := func(o outcome.Outcome) {
		s.Outcomes = append(s.Outcomes, o)
		Print(p, o)
	}

	// 1. Templates.
	for _, o := range scaffold.MaterializeAll(ctx, templates, opts.Dir, m, events) {
		record(o)
	}

	// 2. Environment file.
	record(envfile.Ensure(ctx, opts.Dir))

	// 3. Bootstrap hook.
	_, o := bootstrap.PatchFile(ctx, opts.Dir, false)
	record(o)

	// 4. Type declarations.
	if opts.Installer != nil {
		p.Step("📦 Installing dependencies...")
		record(opts.Installer.Install(ctx, opts.Dir))
	} else {
		record(outcome.NewSkipped(installer.StepName, "", "Skipped dependency installation"))
	}

	printClosing(p, s)
	return s, nil
}

// Print writes one outcome as a status line.
func Print(p *report.Printer, o outcome.Outcome) {
	switch {
	case o.Status == outcome.Applied:
		p.Created("%s", o.Message)
	case o.Status == outcome.Failed:
		p.Fail("%s", o.Message)
	case o.Warn:
		p.Warn("%s", o.Message)
	default:
		p.Info("%s", o.Message)
	}
	for _, d := range o.Details {
		p.Plain("   %s", d)
	}
}

func printClosing(p *report.Printer, s *Summary) {
	applied, skipped, failed := outcome.Counts(s.Outcomes)
	p.Plain("")
	p.Plain("%d applied, %d skipped, %d failed", applied, skipped, failed)
	p.Plain("")
	p.Plain("🎉 Setup complete! Don't forget to:")
	p.Plain("- configure your .env file.")
	p.Plain("- add this to your GitHub Actions workflow:")
	p.Plain("")
	p.Plain("  on:")
	p.Plain("    repository_dispatch:")
	p.Plain("      types: [%s]", branding.DispatchEventType())
}
