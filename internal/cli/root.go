// Package cli builds the cobra command tree: images, models, all and check.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/backmassage/assetopt/internal/config"
)

// NewRootCmd returns the assetopt root command with every subcommand
// attached. Flags shared by all subcommands are persistent on the root.
func NewRootCmd() *cobra.Command {
	flags := &config.FlagValues{}
	cmd := &cobra.Command{
		Use:   "assetopt",
		Short: "Batch-optimize web assets: images to WebP, glTF models with Draco",
		Long: `assetopt converts the site's raster images to WebP and compresses its
glTF binary models with Draco, by driving external command-line tools.

Targets whose output already exists are skipped, a failing target never
stops the rest of the batch, and every run ends with a per-file summary.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}
	config.RegisterFlags(cmd.PersistentFlags(), flags)

	cmd.AddCommand(newImagesCmd(flags))
	cmd.AddCommand(newModelsCmd(flags))
	cmd.AddCommand(newAllCmd(flags))
	cmd.AddCommand(newCheckCmd(flags))

	return cmd
}
