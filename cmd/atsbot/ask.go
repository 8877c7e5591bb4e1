package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "ask one question and print the answer",
	Example: `  $ atsbot ask "open jobs"
  $ atsbot ask "interviews tomorrow" --token $ATS_TOKEN`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			errorColor.Println(err)
			return err
		}
		defer s.close()

		fmt.Fprintln(cmd.OutOrStdout(), s.answer(cmd.Context(), strings.Join(args, " ")))
		return nil
	},
}
