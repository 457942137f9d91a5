package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hottake/hottake/internal/directory"
)

var createCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Start a new debate",
	Long: `Start a new debate with the given title. The stored profile is
bound as the debate's owner; the server assigns the id and creation time.`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	env, err := buildEnv()
	if err != nil {
		return err
	}
	defer env.close()

	created, err := env.client.Create(cmd.Context(), directory.Draft{
		Title: args[0],
		Owner: env.app.CurrentUser(),
	})
	if err != nil {
		return fmt.Errorf("failed to create debate: %w", err)
	}

	fmt.Printf("Created %q (%s)\n", created.Title, created.ID)
	return nil
}
