package distribution

import (
	"bytes"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"ota-server/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, source Source, recorder Recorder) *fiber.App {
	app := fiber.New()
	feature := NewFeature(source, testConfig(""), zap.NewNop(), recorder)
	require.NoError(t, feature.Load(app))
	return app
}

func get(t *testing.T, app *fiber.App, path string) (int, string, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil), 5000)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, resp.Header.Get(fiber.HeaderContentType), body
}

func TestHandleRoot(t *testing.T) {
	root, _ := writeArtifacts(t)
	app := setupTestApp(t, NewDiskSource(root), nil)

	status, _, body := get(t, app, "/")
	assert.Equal(t, 200, status)
	assert.Equal(t, "Server listening...", string(body))
}

func TestHandleArtifact_Binary(t *testing.T) {
	root, binary := writeArtifacts(t)
	app := setupTestApp(t, NewDiskSource(root), nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/fitatu.ipa", nil), 5000)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "application/octet-stream", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, int64(len(binary)), resp.ContentLength)
	assert.True(t, bytes.Equal(binary, body), "binary body differs from backing file")
}

func TestHandleArtifact_Manifest(t *testing.T) {
	root, _ := writeArtifacts(t)
	app := setupTestApp(t, NewDiskSource(root), nil)

	status, contentType, body := get(t, app, "/manifest.plist")
	assert.Equal(t, 200, status)
	assert.Equal(t, "text/plain", contentType)
	assert.Equal(t, manifestBody, body)
}

func TestHandleArtifact_Missing(t *testing.T) {
	// Nothing is written to the root
	app := setupTestApp(t, NewDiskSource(t.TempDir()), nil)

	for _, path := range []string{"/fitatu.ipa", "/manifest.plist"} {
		t.Run(path, func(t *testing.T) {
			status, _, body := get(t, app, path)
			assert.Equal(t, 404, status)
			assert.NotEqual(t, 200, status)
			assert.Contains(t, string(body), path)
		})
	}
}

func TestHandleArtifact_Unreadable(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("StatObject", mock.Anything, "artifacts", "apps/fitatu.ipa", mock.Anything).
		Return(minio.ObjectInfo{}, errors.New("connection refused"))

	app := setupTestApp(t, NewBucketSource(mockClient, "artifacts"), nil)

	status, _, body := get(t, app, "/fitatu.ipa")
	assert.Equal(t, 500, status)
	assert.Equal(t, "Internal Server Error", string(body))
	assert.NotContains(t, string(body), "connection refused")
	assert.NotContains(t, string(body), "apps/fitatu.ipa")
}

func TestHandleArtifact_UnreadableOnDisk(t *testing.T) {
	root, _ := writeArtifacts(t)
	cfg := testConfig("")
	// A path below a regular file fails with ENOTDIR
	cfg.BinaryPath = "manifest.plist/fitatu.ipa"

	app := fiber.New()
	feature := NewFeature(NewDiskSource(root), cfg, zap.NewNop(), nil)
	require.NoError(t, feature.Load(app))

	status, _, body := get(t, app, "/fitatu.ipa")
	assert.Equal(t, 500, status)
	assert.NotContains(t, string(body), root)
	assert.NotContains(t, string(body), "not a directory")
}

func TestUnknownRoute(t *testing.T) {
	root, _ := writeArtifacts(t)
	app := setupTestApp(t, NewDiskSource(root), nil)

	for _, path := range []string{"/apps/fitatu.ipa", "/other.ipa", "/manifest", "/favicon.ico"} {
		t.Run(path, func(t *testing.T) {
			status, _, _ := get(t, app, path)
			assert.Equal(t, 404, status)
		})
	}
}

func TestRegisteredRoutes_OtherMethods(t *testing.T) {
	root, _ := writeArtifacts(t)
	recorder := &memoryRecorder{}
	app := setupTestApp(t, NewDiskSource(root), recorder)

	for _, method := range []string{"POST", "PUT", "DELETE", "PATCH"} {
		for _, path := range []string{"/", "/fitatu.ipa", "/manifest.plist"} {
			t.Run(method+path, func(t *testing.T) {
				resp, err := app.Test(httptest.NewRequest(method, path, nil), 5000)
				require.NoError(t, err)
				defer resp.Body.Close()
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)

				assert.Equal(t, 404, resp.StatusCode)
				assert.Equal(t, "Cannot "+method+" "+path, string(body))
			})
		}
	}
	assert.Empty(t, recorder.all())
}

func TestHandlers_Idempotent(t *testing.T) {
	root, _ := writeArtifacts(t)
	app := setupTestApp(t, NewDiskSource(root), nil)

	for _, path := range []string{"/", "/fitatu.ipa", "/manifest.plist", "/missing"} {
		t.Run(path, func(t *testing.T) {
			firstStatus, firstType, firstBody := get(t, app, path)
			for i := 0; i < 3; i++ {
				status, contentType, body := get(t, app, path)
				assert.Equal(t, firstStatus, status)
				assert.Equal(t, firstType, contentType)
				assert.Equal(t, firstBody, body)
			}
		})
	}
}

func TestHandleArtifact_ReflectsFileOnDisk(t *testing.T) {
	root, _ := writeArtifacts(t)
	app := setupTestApp(t, NewDiskSource(root), nil)

	// Backing files are read per request
	updated := []byte("new manifest")
	require.NoError(t, os.WriteFile(filepath.Join(root, "manifest.plist"), updated, 0o644))

	status, _, body := get(t, app, "/manifest.plist")
	assert.Equal(t, 200, status)
	assert.Equal(t, updated, body)
}

func TestHandleArtifact_RecordsDownloads(t *testing.T) {
	root, binary := writeArtifacts(t)
	recorder := &memoryRecorder{}
	app := setupTestApp(t, NewDiskSource(root), recorder)

	get(t, app, "/fitatu.ipa")
	get(t, app, "/manifest.plist")
	get(t, app, "/")

	resp, err := app.Test(httptest.NewRequest("HEAD", "/fitatu.ipa", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	recorded := recorder.all()
	require.Len(t, recorded, 2)
	assert.Equal(t, ArtifactBinary, recorded[0].Artifact)
	assert.Equal(t, int64(len(binary)), recorded[0].Bytes)
	assert.Equal(t, ArtifactManifest, recorded[1].Artifact)
	assert.Equal(t, int64(len(manifestBody)), recorded[1].Bytes)
}

func TestHandleArtifact_RecorderFailureIgnored(t *testing.T) {
	root, binary := writeArtifacts(t)
	recorder := &memoryRecorder{err: errors.New("database is down")}
	app := setupTestApp(t, NewDiskSource(root), recorder)

	status, _, body := get(t, app, "/fitatu.ipa")
	assert.Equal(t, 200, status)
	assert.Equal(t, binary, body)
}

func TestHandleArtifact_FromBucket(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("StatObject", mock.Anything, "artifacts", "manifest.plist", mock.Anything).
		Return(minio.ObjectInfo{Size: int64(len(manifestBody))}, nil)
	mockClient.On("GetObject", mock.Anything, "artifacts", "manifest.plist", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(manifestBody)), nil)
	mockClient.On("StatObject", mock.Anything, "artifacts", "apps/fitatu.ipa", mock.Anything).
		Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"})

	app := setupTestApp(t, NewBucketSource(mockClient, "artifacts"), nil)

	status, contentType, body := get(t, app, "/manifest.plist")
	assert.Equal(t, 200, status)
	assert.Equal(t, "text/plain", contentType)
	assert.Equal(t, manifestBody, body)

	status, _, _ = get(t, app, "/fitatu.ipa")
	assert.Equal(t, 404, status)

	mockClient.AssertExpectations(t)
}

func TestRegisterRoutes_CustomBackingPath(t *testing.T) {
	root, binary := writeArtifacts(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "builds"), 0o755))
	require.NoError(t, os.Rename(filepath.Join(root, "apps", "fitatu.ipa"), filepath.Join(root, "builds", "latest.ipa")))

	cfg := testConfig("")
	cfg.BinaryPath = "builds/latest.ipa"

	app := fiber.New()
	feature := NewFeature(NewDiskSource(root), cfg, zap.NewNop(), nil)
	require.NoError(t, feature.Load(app))

	// The route stays fixed, only the backing file moves
	status, _, body := get(t, app, "/fitatu.ipa")
	assert.Equal(t, 200, status)
	assert.Equal(t, binary, body)

	status, _, _ = get(t, app, "/builds/latest.ipa")
	assert.Equal(t, 404, status)
}
