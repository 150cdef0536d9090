package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Both pipelines must be reachable from the binary; a declared command
// that is never registered silently disappears from the CLI.
func TestRootCmd_RegistersSubcommands(t *testing.T) {
	names := make([]string, 0, len(rootCmd.Commands()))
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "import")
	assert.Contains(t, names, "expand")
}

func TestRootCmd_FindsExpand(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"expand", "50"})
	assert.NoError(t, err)
	assert.Equal(t, "expand", cmd.Name())
}
