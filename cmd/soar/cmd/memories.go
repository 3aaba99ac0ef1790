package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newMemoriesCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memories",
		Short: "Inspect stored memories",
	}

	var userID string
	search := &cobra.Command{
		Use:   "search --user <id> <query>",
		Short: "Search the memories of a user",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, closeFn, err := flags.newAssistant(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			fmt.Fprintln(cmd.OutOrStdout(), a.RetrieveMemories(cmd.Context(), strings.Join(args, " "), userID))
			return nil
		},
	}
	search.Flags().StringVarP(&userID, "user", "u", "", "User whose memories are searched")
	_ = search.MarkFlagRequired("user")

	cmd.AddCommand(search)
	return cmd
}
