package cmd_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hardware-mapper/cmd"
)

func TestMain(m *testing.M) {
	exitCode := m.Run()

	_, err := snaps.Clean(m, snaps.CleanOpts{Sort: true})
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to clean snapshots: " + err.Error() + "\n")

		os.Exit(1)
	}

	os.Exit(exitCode)
}

var envVars = []string{
	"ENV", "DATABASE_URL", "DB_HOST", "DB_USER", "DB_NAME", "MAPPINGS_FILE",
	"MAPPING_REGISTRY_BASE", "MCP_SERVER_URL", "MCP_BRIDGE_BASE", "CODEGEN_BASE",
	"BOARD_CATALOG_FILE", "GOOGLE_APPLICATION_CREDENTIALS", "SELECTION_MODE", "REQUEST_TIMEOUT",
}

// run executes the CLI against a mapping file in a fresh temp dir
func run(t *testing.T, store string, args ...string) (string, error) {
	t.Helper()

	root := cmd.NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--mappings-file", store}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func newStore(t *testing.T) string {
	t.Helper()
	for _, k := range envVars {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	t.Setenv("BOARD_IMAGE_DIR", filepath.Join(dir, "images"))
	t.Setenv("BOARD_IMAGE_CACHE_DIR", filepath.Join(dir, "cache"))
	return filepath.Join(dir, "mappings.json")
}

func TestRootHelp(t *testing.T) {
	root := cmd.NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--help"})

	require.NoError(t, root.Execute())
	snaps.MatchSnapshot(t, out.String())
}

func TestMappingsAddAndList(t *testing.T) {
	store := newStore(t)

	out, err := run(t, store, "mappings", "add", "--board", "pi5", "--part", "dht22", "--role", "Temperature", "--label", "Living Room", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "dht22/Temperature on pi5 pins 7")
	assert.Contains(t, out, "No register_mapping tool found, mappings kept locally. Saved 1 mapping(s) to the registry.")

	raw, err := os.ReadFile(store)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"boardId": "pi5"`)

	out, err = run(t, store, "mappings", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "Temperature")
	assert.Contains(t, lines[1], "Living Room")

	out, err = run(t, store, "mappings", "list", "--board", "leonardo")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 1)
}

func TestMappingsAddRejections(t *testing.T) {
	store := newStore(t)

	_, err := run(t, store, "mappings", "add", "--board", "pi5", "--part", "led", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pin 1 cannot be selected")

	_, err = run(t, store, "mappings", "add", "--board", "pi5", "--part", "led", "seven")
	require.Error(t, err)

	_, err = run(t, store, "--selection-mode", "multi", "mappings", "add", "--board", "pi5", "--part", "hcsr04", "16")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Select exactly 2 pins")

	_, err = run(t, store, "mappings", "add", "--board", "pi5", "--part", "hcsr04", "16", "18")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most 1 pin(s) in single selection mode, got 2")

	_, err = run(t, store, "--selection-mode", "multi", "mappings", "add", "--board", "pi5", "--part", "hcsr04", "16", "16")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match requested pins")

	_, err = os.Stat(store)
	assert.True(t, os.IsNotExist(err), "rejected adds must not write the store")
}

func TestMappingsRemoveAndReset(t *testing.T) {
	store := newStore(t)

	_, err := run(t, store, "mappings", "add", "--board", "pi5", "--part", "led", "11")
	require.NoError(t, err)
	_, err = run(t, store, "mappings", "add", "--board", "pi5", "--part", "button", "13")
	require.NoError(t, err)

	out, err := run(t, store, "mappings", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	id := strings.Fields(lines[1])[0]

	out, err = run(t, store, "mappings", "remove", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Mapping deleted.")

	out, err = run(t, store, "mappings", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, id)

	out, err = run(t, store, "mappings", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "All mappings cleared.")

	out, err = run(t, store, "mappings", "save")
	require.NoError(t, err, "saving an empty collection only reports it")
	assert.Contains(t, out, "No mappings to save. Add some hardware mappings first.")
}

func TestSheetHTML(t *testing.T) {
	store := newStore(t)

	_, err := run(t, store, "mappings", "add", "--board", "pi5", "--part", "relay", "--label", "Pump", "15")
	require.NoError(t, err)

	out, err := run(t, store, "sheet", "--board", "pi5")
	require.NoError(t, err)
	assert.Contains(t, out, "<td>Pump</td>")
	assert.Equal(t, 1, strings.Count(out, `class="pin pin-mapped"`))
}

func TestSelectionModeFlag(t *testing.T) {
	store := newStore(t)

	_, err := run(t, store, "--selection-mode", "everything", "boards")
	require.Error(t, err)

	out, err := run(t, store, "--selection-mode", "multi", "mappings", "add", "--board", "pi5", "--part", "hcsr04", "16", "18")
	require.NoError(t, err)
	assert.Contains(t, out, "pins 16,18")

	_, err = run(t, store, "mappings", "add", "--board", "pi5", "--part", "led", "16")
	require.Error(t, err, "mapped pins are disabled for new mappings")
}
