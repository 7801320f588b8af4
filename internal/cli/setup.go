package cli

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/swproxy/strapi-webhook-proxy/internal/branding"
	"github.com/swproxy/strapi-webhook-proxy/internal/config"
	"github.com/swproxy/strapi-webhook-proxy/internal/installer"
	"github.com/swproxy/strapi-webhook-proxy/internal/prompt"
	"github.com/swproxy/strapi-webhook-proxy/internal/report"
	"github.com/swproxy/strapi-webhook-proxy/internal/setup"
)

func init() {
	addSetupFlags(setupCmd)
	rootCmd.AddCommand(setupCmd)
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Scaffold the GitHub webhook integration (default command)",
	Long: `Copy the webhook sources into src/, add the GitHub variables to .env,
patch the bootstrap hook in src/index.ts and install @types/koa.

  strapi-webhook-proxy setup
  strapi-webhook-proxy setup --events entry.publish,entry.unpublish
  strapi-webhook-proxy setup --dir ./cms --skip-install`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func addSetupFlags(cmd *cobra.Command) {
	cmd.Flags().String("events", "", "Comma separated events to preselect instead of prompting (env "+branding.EnvVar(config.KeyEvents)+")")
	cmd.Flags().Bool("skip-install", false, "Do not install @types/koa (env "+branding.EnvVar(config.KeySkipInstall)+")")
}

func runSetup(cmd *cobra.Command, args []string) error {
	opts := setupOptions(flagDir, settings, cmd.InOrStdin(), cmd.OutOrStdout())
	_, err := setup.Run(cmd.Context(), opts)
	return err
}

// setupOptions builds the orchestrator options for one run.
func setupOptions(dir string, s config.Settings, in io.Reader, out io.Writer) setup.Options {
	opts := setup.Options{
		Dir:      dir,
		Prompter: prompt.New(prompt.Options{Preset: s.Events, In: in, Out: out}),
		Printer:  report.New(out, s.NoColor),
	}
	if !s.SkipInstall {
		inst := installer.New(s.InstallCommand)
		inst.Stdout = out
		opts.Installer = inst
	}
	return opts
}
