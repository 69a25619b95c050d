package cli

import (
	"github.com/spf13/cobra"

	"github.com/backmassage/assetopt/internal/config"
)

func newAllCmd(flags *config.FlagValues) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Run the image and model pipelines in sequence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, flags, jobImages, jobModels)
		},
	}
	config.RegisterImageFlags(cmd.Flags(), flags)
	config.RegisterModelFlags(cmd.Flags(), flags)
	return cmd
}
