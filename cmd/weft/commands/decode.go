package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/weft/internal/app"
)

func (c *CLI) newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [files...]",
		Short: "Decode descriptor set files and report their contents",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			noCache, _ := cmd.Flags().GetBool("no-cache")

			return c.app.Decode(cmd.Context(), args, app.DecodeOptions{
				NoCache: noCache,
			})
		},
	}
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the descriptor result cache")
	return cmd
}
