package distribution

import (
	"context"
	"crypto/rand"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"ota-server/feature/downloads"

	"github.com/stretchr/testify/require"
)

var manifestBody = []byte(`<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0"><dict><key>items</key><array/></dict></plist>
`)

func testConfig(root string) Config {
	return Config{
		Source:       SourceDisk,
		Root:         root,
		BinaryPath:   "apps/fitatu.ipa",
		ManifestPath: "manifest.plist",
	}
}

// writeArtifacts creates both backing files under a temp dir and returns it with the binary content.
func writeArtifacts(t *testing.T) (string, []byte) {
	t.Helper()
	root := t.TempDir()

	binary := make([]byte, 256*1024)
	_, err := rand.Read(binary)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "apps"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "apps", "fitatu.ipa"), binary, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "manifest.plist"), manifestBody, 0o644))
	return root, binary
}

type memoryRecorder struct {
	mu        sync.Mutex
	downloads []downloads.Download
	err       error
}

func (r *memoryRecorder) Record(_ context.Context, d *downloads.Download) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.downloads = append(r.downloads, *d)
	return nil
}

func (r *memoryRecorder) all() []downloads.Download {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]downloads.Download(nil), r.downloads...)
}
