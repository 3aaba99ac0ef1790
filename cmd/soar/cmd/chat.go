package cmd

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

func newChatCmd(flags *rootFlags) *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "chat --user <id> [message...]",
		Short: "Send a message to the assistant, or start an interactive session without one",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			a, _, closeFn, err := flags.newAssistant(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			out := cmd.OutOrStdout()
			if len(args) > 0 {
				fmt.Fprintln(out, a.Handle(ctx, strings.Join(args, " "), userID))
				return nil
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			fmt.Fprint(out, "> ")
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				switch line {
				case "":
				case "exit", "quit":
					return nil
				default:
					fmt.Fprintln(out, a.Handle(ctx, line, userID))
				}
				if ctx.Err() != nil {
					return nil
				}
				fmt.Fprint(out, "> ")
			}
			return scanner.Err()
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "User the conversation belongs to")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
