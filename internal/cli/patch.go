package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/swproxy/strapi-webhook-proxy/internal/bootstrap"
	"github.com/swproxy/strapi-webhook-proxy/internal/detect"
	"github.com/swproxy/strapi-webhook-proxy/internal/report"
	"github.com/swproxy/strapi-webhook-proxy/internal/setup"
)

var patchDryRun bool

func init() {
	patchCmd.Flags().BoolVar(&patchDryRun, "dry-run", false, "Print the patched file instead of writing it")
	rootCmd.AddCommand(patchCmd)
}

var patchCmd = &cobra.Command{
	Use:   "patch",
	Short: "Call setUpGithubWebhook from the bootstrap hook in src/index.ts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		return patchProject(cmd.Context(), w, report.New(w, settings.NoColor), flagDir, patchDryRun)
	},
}

func patchProject(ctx context.Context, w io.Writer, p *report.Printer, dir string, dryRun bool) error {
	if !detect.IsStrapiProject(dir) {
		return setup.ErrNotStrapiProject
	}

	res, o := bootstrap.PatchFile(ctx, dir, dryRun)
	setup.Print(p, o)
	if dryRun && res.Modified {
		fmt.Fprintln(w)
		fmt.Fprint(w, res.Text)
	}
	return nil
}
