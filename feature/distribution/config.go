package distribution

import (
	"fmt"
	"strings"
)

const (
	SourceDisk   = "disk"
	SourceBucket = "bucket"
)

// Config holds configuration for the served artifacts.
type Config struct {
	// Source selects where backing files are read from (disk, bucket).
	Source string `mapstructure:"source" default:"disk"`
	// Root is the directory disk paths are resolved against.
	Root string `mapstructure:"root" default:"."`
	// BinaryPath is the backing file (or object key) of the binary.
	BinaryPath string `mapstructure:"binary_path" default:"apps/fitatu.ipa"`
	// ManifestPath is the backing file (or object key) of the manifest.
	ManifestPath string `mapstructure:"manifest_path" default:"manifest.plist"`
}

// Validate checks the source and that every artifact has a backing path.
func (c Config) Validate() error {
	if c.Source != SourceDisk && c.Source != SourceBucket {
		return fmt.Errorf("unknown artifact source: %q", c.Source)
	}
	for _, a := range c.Catalog() {
		if strings.TrimSpace(a.Path) == "" {
			return fmt.Errorf("empty backing path for %s", a.Name)
		}
	}
	return nil
}

// Catalog returns the served artifacts in route registration order.
// Routes are fixed; only the backing paths are configurable.
func (c Config) Catalog() Catalog {
	return Catalog{
		{Name: ArtifactBinary, Route: BinaryRoute, Path: c.BinaryPath, ContentType: ContentTypeBinary},
		{Name: ArtifactManifest, Route: ManifestRoute, Path: c.ManifestPath, ContentType: ContentTypeManifest},
	}
}
