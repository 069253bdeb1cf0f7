package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/formwise/internal/definition"
	"github.com/aretw0/formwise/pkg/ports"
)

// SetupDefinitionDir creates a temporary directory, writes the given
// definition files into it (name -> content), and loads it as a
// DirSource. It fails the test immediately on error.
func SetupDefinitionDir(t *testing.T, files map[string]string) (string, ports.DefinitionSource) {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		err := os.WriteFile(filepath.Join(tmpDir, name), []byte(content), 0o644)
		require.NoError(t, err, "Failed to write definition file %s", name)
	}

	src, err := definition.NewDirSource(tmpDir)
	require.NoError(t, err, "Failed to load definition dir")

	return tmpDir, src
}
