package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hottake/hottake/internal/tui"
)

var joinCmd = &cobra.Command{
	Use:   "join <debate-id>",
	Short: "Join a debate session directly by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runJoin,
}

func init() {
	rootCmd.AddCommand(joinCmd)
}

func runJoin(cmd *cobra.Command, args []string) error {
	env, err := buildEnv()
	if err != nil {
		return err
	}
	defer env.close()

	return env.runTUI(tui.WithStartDebate(args[0]))
}
