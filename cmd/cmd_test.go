package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strdeque/internal/common/errors"
)

func testCommand(stdin string) (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetIn(strings.NewReader(stdin))
	c.SetOut(&out)
	return c, &out
}

func TestRunScriptFromStdin(t *testing.T) {
	c, out := testCommand("new\ninsert $1 0 \"a\"\nsize $1\nbogus\n")

	require.NoError(t, runScript(c, "-"))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ok", lines[1])
	assert.Equal(t, "1", lines[2])
	assert.Contains(t, lines[3], "error:")
}

func TestRunScriptMissingFile(t *testing.T) {
	c, _ := testCommand("")

	err := runScript(c, "testdata/does-not-exist.txt")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCodeInvalidParam))
}

func TestCheckScenarios(t *testing.T) {
	c, out := testCommand("")
	require.NoError(t, checkScenarios(c, []string{"../internal/scenario/testdata/basic.yaml"}))
	assert.Contains(t, out.String(), "0 failed")

	c, out = testCommand("")
	err := checkScenarios(c, []string{"../internal/scenario/testdata/failing.yaml"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCodeScenarioFailed))
	assert.Contains(t, out.String(), "FAIL")
}
