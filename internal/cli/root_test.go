package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "swiss", cmd.Use)
	assert.Contains(t, cmd.Long, "Swiss-system")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"register", "players", "count", "report", "matches", "standings", "pairings", "reset", "test"}

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

	dbFlag := cmd.PersistentFlags().Lookup("db")
	require.NotNil(t, dbFlag)
	// Empty means fall back to SWISS_DB
	assert.Equal(t, "", dbFlag.DefValue)
}

func TestPairingsCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	pairingsCmd, _, err := cmd.Find([]string{"pairings"})
	require.NoError(t, err)

	require.NotNil(t, pairingsCmd.Flags().Lookup("strategy"))
	require.NotNil(t, pairingsCmd.Flags().Lookup("max-steps"))
}

func TestTestCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	testCmd, _, err := cmd.Find([]string{"test"})
	require.NoError(t, err)

	for _, name := range []string{"update", "filter", "jobs"} {
		assert.NotNil(t, testCmd.Flags().Lookup(name), "flag --%s", name)
	}
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := executeCommand(t, "count", "--db", tempDB(t), "--format", "yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid format")
}

func TestInvalidEnvironment(t *testing.T) {
	t.Setenv("SWISS_STRATEGY", "random")

	_, _, err := executeCommand(t, "count", "--db", tempDB(t))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestDatabaseFromEnvironment(t *testing.T) {
	t.Setenv("SWISS_DB", tempDB(t))

	_, _, err := executeCommand(t, "register", "Ada")
	require.NoError(t, err)

	stdout, _, err := executeCommand(t, "count")
	require.NoError(t, err)
	assert.Equal(t, "1\n", stdout)
}
