package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/mwessel/phigrid/pkg/errors"
	"github.com/mwessel/phigrid/pkg/store"
)

// snapshotsCommand groups the snapshot management subcommands.
func (c *CLI) snapshotsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "Manage stored complex snapshots",
		Long: `Manage stored complex snapshots.

Snapshots keep a generated topology around for later comparison - useful
for the random architecture, which cannot be regenerated identically.
Save snapshots with 'generate --save <name>' or through the interactive
simulator; export one with 'snapshots show --output'.`,
	}

	cmd.AddCommand(c.snapshotsListCommand())
	cmd.AddCommand(c.snapshotsShowCommand())
	cmd.AddCommand(c.snapshotsDeleteCommand())

	return cmd
}

func (c *CLI) snapshotsListCommand() *cobra.Command {
	sf := &storeFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := sf.open(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			infos, err := st.List(ctx)
			if err != nil {
				return apperrors.Wrap(apperrors.ErrCodeStore, err, "list snapshots")
			}
			if len(infos) == 0 {
				fmt.Println(styleDim.Render("no snapshots stored"))
				return nil
			}

			fmt.Println(styleTitle.Render("Snapshots"))
			for _, info := range infos {
				fmt.Printf("  %s  %s  Φ=%.1f  %d elements  %s\n",
					styleValue.Render(fmt.Sprintf("%-20s", info.Name)),
					styleLabel.Render(fmt.Sprintf("%-10s", info.Architecture)),
					info.Phi,
					info.Elements,
					styleDim.Render(info.SavedAt.Local().Format("2006-01-02 15:04")),
				)
			}
			return nil
		},
	}
	sf.register(cmd)
	return cmd
}

func (c *CLI) snapshotsShowCommand() *cobra.Command {
	var output string
	sf := &storeFlags{}

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print a snapshot's JSON (or write it to a file)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			st, err := sf.open(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			rec, err := st.Get(ctx, name)
			if errors.Is(err, store.ErrNotFound) {
				return apperrors.New(apperrors.ErrCodeSnapshotNotFound, "snapshot %s not found", name)
			}
			if err != nil {
				return apperrors.Wrap(apperrors.ErrCodeStore, err, "get snapshot %s", name)
			}

			if output == "" {
				_, err := os.Stdout.Write(rec.Data)
				return err
			}
			if err := os.WriteFile(output, rec.Data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Wrote %s", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the snapshot JSON to a file")
	sf.register(cmd)
	return cmd
}

func (c *CLI) snapshotsDeleteCommand() *cobra.Command {
	sf := &storeFlags{}

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			st, err := sf.open(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			err = st.Delete(ctx, name)
			if errors.Is(err, store.ErrNotFound) {
				return apperrors.New(apperrors.ErrCodeSnapshotNotFound, "snapshot %s not found", name)
			}
			if err != nil {
				return apperrors.Wrap(apperrors.ErrCodeStore, err, "delete snapshot %s", name)
			}
			printSuccess("Deleted snapshot %s", name)
			return nil
		},
	}
	sf.register(cmd)
	return cmd
}
