package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"seraph.si/v2/bfhl-form/src/form"
)

func newSubmitCmd(opts *options) *cobra.Command {
	var fields []string

	cmd := &cobra.Command{
		Use:   "submit [file|-]",
		Short: "Submit JSON once and print the selected fields",
		Long: `Reads a JSON document from a file, or from stdin when the argument is "-"
or missing, submits it and prints the selected fields.

Example:
  echo '{"data":["a","1","B"]}' | bfhl-form submit --fields numbers,alphabets`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := form.ParseFields(fields)
			if err != nil {
				return err
			}

			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			state := &form.State{Input: input, Selected: sel}
			if err := opts.client().Submit(cmd.Context(), state); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), state.ErrorMessage())
				return errReported
			}

			if text := form.RenderText(state.Result, state.Selected); text != "" {
				fmt.Fprintln(cmd.OutOrStdout(), text)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&fields, "fields", "f", []string{"numbers", "alphabets"}, "fields to print (numbers, alphabets)")
	return cmd
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(data), nil
}
