package cli

import (
	"github.com/spf13/cobra"

	"github.com/mwessel/phigrid/pkg/buildinfo"
	"github.com/mwessel/phigrid/pkg/config"
)

// RootCommand builds the phigrid command tree.
//
// Configuration is loaded once in PersistentPreRunE so every subcommand
// sees the same merged defaults + config file. The --config flag takes
// precedence over the default lookup path.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "phigrid simulates information integration across network architectures",
		Long: `phigrid is an educational simulator for system-level information
integration. It generates small element graphs under three topological
architectures - integrated, modular, and random - and associates each with
a conceptual Φ score.

Run 'phigrid sim' for the interactive simulator, 'phigrid generate' for
one-shot generation, or 'phigrid serve' for the HTTP API.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			c.Logger.Debug("configuration loaded",
				"elements", cfg.Generation.Elements,
				"grid_width", cfg.Generation.GridWidth,
				"architecture", cfg.Generation.Architecture,
			)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: "+config.DefaultPath()+")")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.simCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.snapshotsCommand())

	return root
}
