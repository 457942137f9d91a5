package cmd

import "testing"

func TestRootCommand(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("rootCmd is nil")
	}
	if rootCmd.Use != "hottake" {
		t.Errorf("unexpected root command name %q", rootCmd.Use)
	}

	expected := []string{"join", "profile", "create", "debates", "serve"}
	for _, name := range expected {
		found := false
		for _, sub := range rootCmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}
}

func TestProfileSubcommands(t *testing.T) {
	expected := map[string]bool{"set": false, "clear": false}
	for _, sub := range profileCmd.Commands() {
		if _, ok := expected[sub.Name()]; ok {
			expected[sub.Name()] = true
		}
	}
	for name, found := range expected {
		if !found {
			t.Errorf("expected profile subcommand %q to be registered", name)
		}
	}
}
