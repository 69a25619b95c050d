package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/backmassage/assetopt/internal/check"
	"github.com/backmassage/assetopt/internal/config"
	"github.com/backmassage/assetopt/internal/display"
)

// ErrCheckFailed is returned by the check command when any tool is missing
// or does not answer its version probe.
var ErrCheckFailed = errors.New("dependency check failed")

func newCheckCmd(flags *config.FlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that the configured external tools are available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags)
			if err != nil {
				return err
			}
			defer s.log.Close()

			display.PrintBanner(s.log.Writer())
			if !check.RunCheck(cmd.Context(), check.Tools(&s.cfg), s.log, s.runner) {
				return ErrCheckFailed
			}
			return nil
		},
	}
}
