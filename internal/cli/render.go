package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/mwessel/phigrid/pkg/errors"
	"github.com/mwessel/phigrid/pkg/graphio"
	"github.com/mwessel/phigrid/pkg/render"
	"github.com/mwessel/phigrid/pkg/system"
	"github.com/mwessel/phigrid/pkg/topology"
)

// renderCommand creates the render command for image output.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		archLabel string
		elements  int
		input     string
		format    string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a complex as SVG or PNG via Graphviz",
		Long: `Render a complex as an image.

By default a fresh complex is generated for --architecture. Pass --input
to render a previously exported snapshot JSON instead (e.g. from
'generate --format json' or 'snapshots show').`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Unset flags follow the loaded config, not the defaults
			// captured at construction time (see generateCommand).
			if !cmd.Flags().Changed("architecture") {
				archLabel = c.Config.Generation.Architecture
			}
			if !cmd.Flags().Changed("elements") {
				elements = c.Config.Generation.Elements
			}

			var (
				complex *system.Complex
				err     error
			)
			if input != "" {
				complex, err = graphio.ReadComplexFile(input)
				if err != nil {
					return err
				}
			} else {
				arch, perr := system.ParseArchitecture(archLabel)
				if perr != nil {
					return apperrors.Wrap(apperrors.ErrCodeInvalidArchitecture, perr, "--architecture")
				}
				complex, err = topology.Generate(arch, elements,
					topology.WithGridWidth(c.Config.Generation.GridWidth),
					topology.WithEvaluator(c.Config.Scale()),
				)
				if err != nil {
					return err
				}
			}

			dot := render.ToDOT(complex, render.Options{
				Thresholds: c.Config.Thresholds(),
				ShortIDs:   true,
			})

			p := newProgress(c.Logger)
			var data []byte
			switch format {
			case "svg":
				data, err = render.RenderSVG(cmd.Context(), dot)
			case "png":
				data, err = render.RenderPNG(cmd.Context(), dot)
			case "dot":
				data = []byte(dot)
			default:
				return apperrors.New(apperrors.ErrCodeInvalidFormat, "unknown format %q (want svg, png, or dot)", format)
			}
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			p.done(fmt.Sprintf("Rendered %s complex as %s", complex.Architecture, format))

			if output == "" {
				output = defaultOutputName(complex, format)
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Wrote %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&archLabel, "architecture", "a", c.Config.Generation.Architecture, "architecture: integrated, modular, or random")
	cmd.Flags().IntVarP(&elements, "elements", "n", c.Config.Generation.Elements, "number of elements")
	cmd.Flags().StringVarP(&input, "input", "i", "", "snapshot JSON to render instead of generating")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg, png, or dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <architecture>.<format>)")

	return cmd
}

func defaultOutputName(c *system.Complex, format string) string {
	return strings.ToLower(c.Architecture.String()) + "." + format
}
