package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hottake/hottake/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the stored profile",
	RunE:  runProfileShow,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	Long: `Update profile fields. Only the flags you pass are changed; the
rest of the profile is left alone. Pass an empty value to clear a field,
e.g. --gender "".`,
	RunE: runProfileSet,
}

var profileClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the stored profile",
	RunE:  runProfileClear,
}

func init() {
	profileSetCmd.Flags().String("name", "", "display name")
	profileSetCmd.Flags().Int("age", 0, "age")
	profileSetCmd.Flags().String("gender", "", "gender (male, female, other)")

	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileClearCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	env, err := buildEnv()
	if err != nil {
		return err
	}
	defer env.close()

	user, found := env.store.Read()
	if !found {
		fmt.Println("No profile stored yet. Run `hottake profile set --name <name>` to create one.")
		return nil
	}

	fmt.Printf("ID:      %s\n", user.ID)
	fmt.Printf("Name:    %s\n", user.Name)
	if user.Age != nil {
		fmt.Printf("Age:     %d\n", *user.Age)
	} else {
		fmt.Println("Age:     (not set)")
	}
	if user.Gender != "" {
		fmt.Printf("Gender:  %s\n", user.Gender)
	} else {
		fmt.Println("Gender:  (not set)")
	}
	return nil
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	env, err := buildEnv()
	if err != nil {
		return err
	}
	defer env.close()

	patch := profile.Patch{}
	if cmd.Flags().Changed("name") {
		name, _ := cmd.Flags().GetString("name")
		patch = patch.WithName(name)
	}
	if cmd.Flags().Changed("age") {
		age, _ := cmd.Flags().GetInt("age")
		patch = patch.WithAge(age)
	}
	if cmd.Flags().Changed("gender") {
		raw, _ := cmd.Flags().GetString("gender")
		if raw == "" {
			patch = patch.ClearGender()
		} else {
			gender, err := profile.ParseGender(raw)
			if err != nil {
				return err
			}
			patch = patch.WithGender(gender)
		}
	}

	if patch.IsEmpty() {
		return fmt.Errorf("nothing to update: pass --name, --age, or --gender")
	}

	saved, err := env.store.Update(patch)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	fmt.Printf("Saved profile for %s\n", saved.Label())
	return nil
}

func runProfileClear(cmd *cobra.Command, args []string) error {
	env, err := buildEnv()
	if err != nil {
		return err
	}
	defer env.close()

	if err := env.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear profile: %w", err)
	}

	fmt.Println("Profile cleared.")
	return nil
}
