package distribution

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{"Default", func(c *Config) {}, false},
		{"Bucket", func(c *Config) { c.Source = SourceBucket }, false},
		{"UnknownSource", func(c *Config) { c.Source = "ftp" }, true},
		{"EmptyPath", func(c *Config) { c.BinaryPath = " " }, true},
		{"EmptyManifestPath", func(c *Config) { c.ManifestPath = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(".")
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Catalog(t *testing.T) {
	catalog := testConfig(".").Catalog()

	assert.Len(t, catalog, 2)
	assert.Equal(t, ArtifactBinary, catalog[0].Name)
	assert.Equal(t, "/fitatu.ipa", catalog[0].Route)
	assert.Equal(t, "application/octet-stream", catalog[0].ContentType)
	assert.Equal(t, ArtifactManifest, catalog[1].Name)
	assert.Equal(t, "/manifest.plist", catalog[1].Route)
	assert.Equal(t, "text/plain", catalog[1].ContentType)

	a, ok := catalog.Lookup(ArtifactManifest)
	assert.True(t, ok)
	assert.Equal(t, "manifest.plist", a.Path)

	_, ok = catalog.Lookup("unknown")
	assert.False(t, ok)
}
