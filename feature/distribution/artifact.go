package distribution

const (
	// RootRoute answers with Acknowledgement.
	RootRoute = "/"
	// Acknowledgement is the body served on RootRoute.
	Acknowledgement = "Server listening..."
	// BinaryRoute serves the application binary.
	BinaryRoute = "/fitatu.ipa"
	// ManifestRoute serves the installation manifest.
	ManifestRoute = "/manifest.plist"

	ArtifactBinary   = "binary"
	ArtifactManifest = "manifest"

	ContentTypeBinary   = "application/octet-stream"
	ContentTypeManifest = "text/plain"
)

// Artifact is a fixed backing file served verbatim on its route.
type Artifact struct {
	Name        string `json:"name"`
	Route       string `json:"route"`
	Path        string `json:"path"`
	ContentType string `json:"content_type"`
}

// Catalog is the ordered set of served artifacts.
type Catalog []Artifact

// Lookup returns the artifact with the given name.
func (c Catalog) Lookup(name string) (Artifact, bool) {
	for _, a := range c {
		if a.Name == name {
			return a, true
		}
	}
	return Artifact{}, false
}
