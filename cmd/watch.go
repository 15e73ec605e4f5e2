package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"notesapp/internal/client"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print notes as they are created",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		return newAPIClient().Watch(ctx, func(n client.Note) {
			fmt.Fprintf(out, "%s\t%s\n", n.ID, n.Text)
		})
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
