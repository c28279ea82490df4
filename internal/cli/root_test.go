package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "pikov", cmd.Use)
	assert.Contains(t, cmd.Long, "transition")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"create", "import", "preview", "graph", "info", "start"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "", configFlag.DefValue)
}

func TestImportCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	importCmd, _, err := cmd.Find([]string{"import"})
	require.NoError(t, err)

	for _, name := range []string{"manifest", "sheet", "id", "frame-width", "frame-height", "fps", "frames", "flip-x", "loop"} {
		assert.NotNil(t, importCmd.Flags().Lookup(name), "flag %s should exist", name)
	}
}

func TestPreviewCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	previewCmd, _, err := cmd.Find([]string{"preview"})
	require.NoError(t, err)

	outputFlag := previewCmd.Flags().Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)
	assert.Equal(t, "preview.gif", outputFlag.DefValue)

	for _, name := range []string{"start", "min", "max", "scale", "seed", "loop-count"} {
		assert.NotNil(t, previewCmd.Flags().Lookup(name), "flag %s should exist", name)
	}
}

func TestGraphCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	graphCmd, _, err := cmd.Find([]string{"graph"})
	require.NoError(t, err)

	require.NotNil(t, graphCmd.Flags().Lookup("output"))
	require.NotNil(t, graphCmd.Flags().Lookup("as"))
}

func TestStartCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	startCmd, _, err := cmd.Find([]string{"start"})
	require.NoError(t, err)

	require.NotNil(t, startCmd.Flags().Lookup("set"))
	require.NotNil(t, startCmd.Flags().Lookup("clear"))
}

func TestRootRejectsInvalidFormat(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"info", "--format", "xml", "nonexistent.pikov"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRepositoryPathPrefersArgument(t *testing.T) {
	opts := &RootOptions{Config: Config{Repository: "from-config.pikov"}}

	assert.Equal(t, "from-arg.pikov", repositoryPath(opts, []string{"from-arg.pikov"}))
	assert.Equal(t, "from-config.pikov", repositoryPath(opts, nil))
	assert.Equal(t, "", repositoryPath(&RootOptions{}, nil))
}
