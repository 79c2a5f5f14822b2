package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	expected := []string{"enrich", "discover", "fix", "runs", "serve"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "listing-cli", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestEnrichCommand_Flags(t *testing.T) {
	flag := enrichCmd.Flags().Lookup("csv")
	require.NotNil(t, flag, "enrich command should have --csv flag")

	for _, flagName := range []string{"output", "limit", "concurrency", "chunk-size", "offline"} {
		assert.NotNil(t, enrichCmd.Flags().Lookup(flagName), "enrich should have --%s flag", flagName)
	}
}

func TestDiscoverCommand_Flags(t *testing.T) {
	flag := discoverCmd.Flags().Lookup("city")
	require.NotNil(t, flag, "discover command should have --city flag")

	assert.NotNil(t, discoverCmd.Flags().Lookup("keyword"))
	assert.NotNil(t, discoverCmd.Flags().Lookup("output"))
}

func TestFixCommand_Flags(t *testing.T) {
	flag := fixCmd.Flags().Lookup("input")
	require.NotNil(t, flag, "fix command should have --input flag")

	outFlag := fixCmd.Flags().Lookup("output-dir")
	require.NotNil(t, outFlag)
	assert.Equal(t, "fixed", outFlag.DefValue)
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}
