package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/swproxy/strapi-webhook-proxy/internal/detect"
	"github.com/swproxy/strapi-webhook-proxy/internal/report"
	"github.com/swproxy/strapi-webhook-proxy/internal/setup"
)

func init() {
	rootCmd.AddCommand(detectCmd)
}

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Check whether the directory is a Strapi project",
	Long:  `Report what detection found and exit with status 1 when the directory is not a Strapi project.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return detectProject(report.New(cmd.OutOrStdout(), settings.NoColor), flagDir)
	},
}

func detectProject(p *report.Printer, dir string) error {
	f := detect.Inspect(dir)
	if !detect.Compatible(f) {
		for _, problem := range f.Problems() {
			p.Info("%s", problem)
		}
		return setup.ErrNotStrapiProject
	}

	p.Created("Strapi project detected")
	rng := f.StrapiRange
	if rng == "" {
		rng = "(no version range)"
	}
	p.Plain("   %s: %s", detect.StrapiDependency, rng)
	if v, err := f.StrapiVersion(); err == nil {
		p.Plain("   lowest admitted version: %s", v)
	}
	p.Plain("   entry points: %s", strings.Join(f.EntryPoints, ", "))
	return nil
}
