package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	apperrors "github.com/yanqian/ai-almanac/pkg/errors"
)

func newReadCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "read",
		Short: "Run the pipeline once and print the reading as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := buildService(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			reading, err := svc.Generate(cmd.Context(), opts.request())
			if err != nil {
				return userError(err)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			return enc.Encode(reading)
		},
	}
}

// userError drops the wrapped cause from validation failures so the CLI
// prints the same localized message the API returns.
func userError(err error) error {
	if apperrors.IsCode(err, "invalid_input") {
		return &apperrors.AppError{Code: "invalid_input", Message: apperrors.MessageOf(err)}
	}
	return err
}
