package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/valueprop/internal/config"
	"github.com/aretw0/valueprop/pkg/adapters/file"
	"github.com/aretw0/valueprop/pkg/compose"
	"github.com/aretw0/valueprop/pkg/storage"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func seed(t *testing.T, record string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, file.New(dir).Set(context.Background(), "valueProp_data", []byte(record)))
	return dir
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "valueprop version "))
}

func TestExport_File(t *testing.T) {
	dir := seed(t, `{"valueProposition":"I help teams ship.","softSkills":["empathy"]}`)
	target := filepath.Join(t.TempDir(), "summary.txt")

	out, err := execute(t, "export", "--backend", "file", "--storage-dir", dir, "--share=false", "-o", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Summary written to")

	body, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Value Proposition:\nI help teams ship.")
	assert.Contains(t, string(body), "• empathy")
}

func TestExport_Share(t *testing.T) {
	dir := seed(t, `{"valueProposition":"I help teams ship."}`)

	out, err := execute(t, "export", "--backend", "file", "--storage-dir", dir, "--share")
	require.NoError(t, err)

	var payload compose.SharePayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, compose.SharePayload{Title: "My Value Proposition", Text: "I help teams ship."}, payload)
}

func TestStorageCommands(t *testing.T) {
	dir := seed(t, `{"audience":"CTOs"}`)
	flags := []string{"--backend", "file", "--storage-dir", dir}
	run := func(args ...string) (string, error) {
		return execute(t, append(args, flags...)...)
	}

	out, err := run("storage", "ls")
	require.NoError(t, err)
	assert.Equal(t, "- data\n", out)

	out, err = run("storage", "inspect", "data")
	require.NoError(t, err)
	assert.Contains(t, out, `"audience": "CTOs"`)

	out, err = run("storage", "info")
	require.NoError(t, err)
	var info storage.Info
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, []string{"data"}, info.Keys)
	assert.Equal(t, len(`{"audience":"CTOs"}`), info.Size)

	_, err = run("storage", "rm", "data")
	require.NoError(t, err)
	_, err = run("storage", "inspect", "data")
	assert.Error(t, err)

	out, err = run("storage", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Storage cleared.")

	out, err = run("storage", "ls")
	require.NoError(t, err)
	assert.Equal(t, "No saved data found.\n", out)
}

func TestInvalidBackend(t *testing.T) {
	_, err := execute(t, "storage", "ls", "--backend", "sqlite")
	assert.Error(t, err)
}

func TestGraph(t *testing.T) {
	out, err := execute(t, "graph")
	require.NoError(t, err)
	assert.Contains(t, out, "step4 -- next --> step5")
}

func TestSetupWithConfig_DoesNotReloadConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(config.DefaultPath, []byte("log_level: [unclosed\n"), 0o600))

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	_, _, _, err := setup(cmd)
	require.Error(t, err, "the broken file is picked up by setup")

	cfg := config.Default()
	cfg.Storage.Backend = config.BackendMemory
	w, logger, closeFn, err := setupWithConfig(cmd, cfg)
	require.NoError(t, err)
	defer closeFn()

	assert.NotNil(t, logger)
	assert.Equal(t, "", w.Store.Data().Audience)
}
