package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/swproxy/strapi-webhook-proxy/internal/bootstrap"
	"github.com/swproxy/strapi-webhook-proxy/internal/branding"
	"github.com/swproxy/strapi-webhook-proxy/internal/envfile"
	"github.com/swproxy/strapi-webhook-proxy/internal/manifest"
	"github.com/swproxy/strapi-webhook-proxy/internal/report"
	"github.com/swproxy/strapi-webhook-proxy/internal/scaffold"
)

var statusNoRedact bool

func init() {
	statusCmd.Flags().BoolVar(&statusNoRedact, "no-redact", false, "Show env values without redaction")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which parts of the integration are in place",
	Long: `Check the generated files, the GitHub variables in .env and the bootstrap
hook. Variables still holding a {PLACEHOLDER} are reported so they can be
filled in before deploying.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showStatus(report.New(cmd.OutOrStdout(), settings.NoColor), flagDir, statusNoRedact)
	},
}

func showStatus(p *report.Printer, dir string, noRedact bool) error {
	m, err := manifest.Load(scaffold.Templates())
	if err != nil {
		return err
	}

	p.Plain("Files")
	for _, e := range m.Files {
		rel := filepath.FromSlash(e.Dest)
		if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
			p.Warn("%s is missing", rel)
			continue
		}
		p.Created("%s", rel)
	}

	p.Step("Environment (%s)", envfile.FileName)
	entries, err := envfile.ParseEnvFile(filepath.Join(dir, envfile.FileName))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		p.Warn("%s not found", envfile.FileName)
	case err != nil:
		return err
	default:
		for _, vs := range envfile.Inspect(entries) {
			value := vs.Value
			if !noRedact {
				value = envfile.RedactValue(vs.Key, vs.Value)
			}
			switch {
			case !vs.Defined:
				p.Warn("%s is not set", vs.Key)
			case vs.Placeholder:
				p.Warn("%s still holds a placeholder: %s", vs.Key, value)
			default:
				p.Created("%s=%s", vs.Key, value)
			}
		}
	}

	p.Step("Bootstrap (%s)", bootstrap.IndexFile)
	data, err := os.ReadFile(filepath.Join(dir, bootstrap.IndexFile))
	if err != nil {
		p.Warn("%s not found", bootstrap.IndexFile)
		return nil
	}
	switch bootstrap.Classify(string(data)) {
	case bootstrap.MatchAlreadyPatched:
		p.Created("bootstrap calls setUpGithubWebhook")
	case bootstrap.MatchNone:
		p.Warn("no bootstrap hook recognized; add the call by hand")
		for _, line := range bootstrap.ManualInstructions() {
			p.Plain("   %s", line)
		}
	default:
		p.Warn("bootstrap hook not patched yet; run '%s patch'", branding.CLIName())
	}
	return nil
}
