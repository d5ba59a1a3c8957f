package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPromptCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Print the provider prompt without calling the provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.offline = true
			svc, err := buildService(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			prompt, err := svc.Prompt(opts.request())
			if err != nil {
				return userError(err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), prompt)
			return err
		},
	}
}
