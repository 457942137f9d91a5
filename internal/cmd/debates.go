package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var debatesCmd = &cobra.Command{
	Use:   "debates",
	Short: "Work with the debate directory",
}

var debatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all debates",
	RunE:  runDebatesList,
}

var debatesDeleteCmd = &cobra.Command{
	Use:   "delete <debate-id>",
	Short: "Delete a debate",
	Args:  cobra.ExactArgs(1),
	RunE:  runDebatesDelete,
}

func init() {
	debatesCmd.AddCommand(debatesListCmd)
	debatesCmd.AddCommand(debatesDeleteCmd)
	rootCmd.AddCommand(debatesCmd)
}

func runDebatesList(cmd *cobra.Command, args []string) error {
	env, err := buildEnv()
	if err != nil {
		return err
	}
	defer env.close()

	debates, err := env.client.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list debates: %w", err)
	}

	if len(debates) == 0 {
		fmt.Println("No debates yet.")
		return nil
	}

	for _, d := range debates {
		fmt.Printf("%s  %-60q %d participating\n", d.ID, d.Title, d.ParticipantCount())
	}
	return nil
}

func runDebatesDelete(cmd *cobra.Command, args []string) error {
	env, err := buildEnv()
	if err != nil {
		return err
	}
	defer env.close()

	ok, err := env.client.Remove(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to delete debate: %w", err)
	}
	if !ok {
		fmt.Println("Debate was already gone.")
		return nil
	}

	fmt.Println("Debate deleted.")
	return nil
}
