package cli

import (
	"github.com/spf13/cobra"

	"github.com/backmassage/assetopt/internal/config"
)

func newModelsCmd(flags *config.FlagValues) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Compress glTF binary models with Draco",
		Long: `Apply Draco geometry compression to each configured source=destination
model pair. The source file is never modified.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, flags, jobModels)
		},
	}
	config.RegisterModelFlags(cmd.Flags(), flags)
	return cmd
}
