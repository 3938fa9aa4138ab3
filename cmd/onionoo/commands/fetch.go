package commands

import (
	"context"

	"github.com/spf13/cobra"

	"ikedadada/go-onionoo/onionoo"
)

type fetchFunc func(*onionoo.Client, context.Context) (onionoo.Directory, error)

func newFetchCmd(opts *rootOptions, use, short string, fetch fetchFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := fetch(opts.client, cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, dir)
		},
	}
}
