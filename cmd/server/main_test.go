package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "yoda dev\n", out)
}

func TestServe_FlagsReachConfig(t *testing.T) {
	_, err := run(t, "serve", "--env-file", "", "--store", "postgres")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), `unknown store "postgres"`), err.Error())
}

func TestRoot_AcceptsServeFlags(t *testing.T) {
	_, err := run(t, "--env-file", "", "--log-format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_format")
}
