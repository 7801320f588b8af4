package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/swproxy/strapi-webhook-proxy/internal/branding"
	"github.com/swproxy/strapi-webhook-proxy/internal/config"
	"github.com/swproxy/strapi-webhook-proxy/internal/logging"
	"github.com/swproxy/strapi-webhook-proxy/internal/prompt"
	"github.com/swproxy/strapi-webhook-proxy/internal/report"
	"github.com/swproxy/strapi-webhook-proxy/internal/setup"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagDir    string
	flagConfig string

	cfg      = config.New()
	settings config.Settings
)

// flagKeys maps flag names to the config keys they override.
var flagKeys = map[string]string{
	"events":       config.KeyEvents,
	"skip-install": config.KeySkipInstall,
	"verbose":      config.KeyVerbose,
	"no-color":     config.KeyNoColor,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagDir, "dir", "C", ".", "Strapi project directory")
	pf.StringVar(&flagConfig, "config", "", "Config file (default <dir>/"+branding.ConfigName()+".yaml)")
	pf.Bool("verbose", false, "Print debug logs to stderr")
	pf.Bool("no-color", false, "Disable colored output")

	addSetupFlags(rootCmd)
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` adds a GitHub Actions trigger to an existing Strapi project.

Run without a subcommand from the root of the project to copy the webhook
sources into src/, add the GitHub variables to .env, call setUpGithubWebhook
from the bootstrap hook and install @types/koa. Existing files are never
overwritten, so running it again is safe.

Source: https://github.com/` + branding.GitHubRepo(),
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initRun,
	RunE:              runSetup,
}

// initRun loads the config file and environment, lets flags override them
// and puts the diagnostic logger into the command context.
func initRun(cmd *cobra.Command, args []string) error {
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := cfg.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	if err := config.Load(cfg, flagDir, flagConfig); err != nil {
		return err
	}
	settings = config.Resolve(cfg)

	level := slog.LevelInfo
	if settings.Verbose {
		level = slog.LevelDebug
	}
	logger := logging.New(cmd.ErrOrStderr(), level, settings.NoColor)
	cmd.SetContext(logging.Put(cmd.Context(), logger))
	logger.Debug("configuration resolved", "dir", flagDir, "config", cfg.ConfigFileUsed(),
		"events", settings.Events, "skip_install", settings.SkipInstall)
	return nil
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		reportError(os.Stderr, err)
	}
	return err
}

// reportError prints err the way the operator expects to read it.
func reportError(w io.Writer, err error) {
	p := report.New(w, settings.NoColor)
	switch {
	case errors.Is(err, setup.ErrNotStrapiProject):
		p.Fail("This doesn't appear to be a Strapi project.")
		p.Plain("   Please run this command from the root of your Strapi project.")
	case errors.Is(err, prompt.ErrCancelled):
		p.Warn("Setup cancelled. No files were changed.")
	default:
		p.Fail("%v", err)
	}
}
