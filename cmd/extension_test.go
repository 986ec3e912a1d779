package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExtension(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script extension")
	}
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")
	script := "#!/bin/sh\necho \"$" + EnvConfig + " $@\" > " + out + "\nexit 3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "strack-hello"), []byte(script), 0o755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	found, code := RunExtension("hello", []string{"a", "b"})
	assert.True(t, found)
	assert.Equal(t, 3, code)
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, *configPath+" a b", strings.TrimSpace(string(got)))

	found, code = RunExtension("missing-extension", nil)
	assert.False(t, found)
	assert.Zero(t, code)
}

func TestIsCommand(t *testing.T) {
	assert.True(t, IsCommand("tax"))
	assert.False(t, IsCommand("hello"))
}
