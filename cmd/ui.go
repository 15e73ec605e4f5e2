package cmd

import (
	"bufio"
	"fmt"

	"notesapp/internal/view"
	"notesapp/pkg/logger"

	"github.com/spf13/cobra"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Interactive notes screen",
	Long: `Shows the notes list and reads one draft per line from stdin.
Each line replaces the draft and is submitted. Type :q to quit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		var v *view.View
		v = view.New(newAPIClient(), view.LogReporter{Log: logger.Log}, view.WithOnChange(func() {
			fmt.Fprintln(out)
			if err := view.Render(out, v.Snapshot()); err != nil {
				logger.Sugar.Errorf("Failed to render notes: %v", err)
			}
		}))

		v.Activate(cmd.Context())
		defer v.Close()

		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			line := scanner.Text()
			if line == ":q" {
				break
			}
			v.SetDraft(line)
			v.Submit()
		}
		v.Wait()
		return scanner.Err()
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
