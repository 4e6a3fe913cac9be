package cmd

import (
	"github.com/spf13/cobra"

	"github.com/viosson/agentorg/internal/tui"
)

var dashCmd = &cobra.Command{
	Use:   "dash",
	Short: "Open the live organization dashboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		return tui.Run(app.Coordinator, app.Config.TUI.RefreshInterval())
	},
}

func init() {
	rootCmd.AddCommand(dashCmd)
}
