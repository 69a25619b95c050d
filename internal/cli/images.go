package cli

import (
	"github.com/spf13/cobra"

	"github.com/backmassage/assetopt/internal/config"
)

func newImagesCmd(flags *config.FlagValues) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "images",
		Short: "Convert JPEG/PNG images to WebP",
		Long: `Scan each configured image directory (non-recursively) for JPEG and PNG
files and encode each one to <name>.webp beside the original.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, flags, jobImages)
		},
	}
	config.RegisterImageFlags(cmd.Flags(), flags)
	return cmd
}
