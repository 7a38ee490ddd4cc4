package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFixture writes a YAML set fixture into a temp directory and
// returns its path. It fails the test immediately on error.
func WriteFixture(t *testing.T, yaml string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "set.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644), "Failed to write set fixture")
	return path
}
