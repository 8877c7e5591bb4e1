package main

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"ats-assistant-be/pkg/assistant"

	"github.com/spf13/cobra"
)

var typingInterval time.Duration

var chatCmd = &cobra.Command{
	Use:          "chat",
	Short:        "start an interactive session",
	Long:         `Start an interactive session. Type "exit" or press Ctrl+D to leave.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runChat,
}

func init() {
	chatCmd.Flags().DurationVar(&typingInterval, "typing", 15*time.Millisecond, "delay between revealed characters (0 prints at once)")
}

func runChat(cmd *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		errorColor.Println(err)
		return err
	}
	defer s.close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, labelColor.Sprint("ATS Assistant"), "- ask about jobs, candidates, interviews or clients.")

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, youColor.Sprint("you> "))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		text := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(text) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		answer := s.answer(ctx, text)
		printed := 0
		err = assistant.Reveal(ctx, answer, typingInterval, func(prefix string) error {
			fmt.Fprint(out, prefix[printed:])
			printed = len(prefix)
			return nil
		})
		fmt.Fprintln(out)
		if err != nil {
			return err
		}
	}
}
