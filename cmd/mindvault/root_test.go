package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
)

func newFlagCommand() *cobra.Command {
	return &cobra.Command{Use: "test", Run: func(*cobra.Command, []string) {}}
}

func TestRootCmd_Use(t *testing.T) {
	if rootCmd.Use != "mindvault" {
		t.Errorf("rootCmd.Use = %s, expected mindvault", rootCmd.Use)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"json", "host", "port"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("rootCmd should have --%s flag", name)
		}
	}
	if flag := rootCmd.PersistentFlags().Lookup("json"); flag.DefValue != "false" {
		t.Errorf("--json flag default = %s, expected false", flag.DefValue)
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	want := []string{
		"serve", "mcp", "create", "list", "show", "update", "delete",
		"search", "search-update", "bulk-create", "bulk-delete",
	}
	have := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		have[cmd.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestRootCmd_Help(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"--help"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Errorf("rootCmd.Execute() returned error: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("Help output should not be empty")
	}
}
