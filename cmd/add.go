package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [text...]",
	Short: "Create a note",
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := newAPIClient().CreateNote(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), note.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
