package distribution

import (
	"context"
	"errors"
	"time"

	"ota-server/feature/downloads"

	"go.uber.org/zap"
)

const recordTimeout = 2 * time.Second

// Recorder persists download events.
type Recorder interface {
	Record(ctx context.Context, d *downloads.Download) error
}

// Service resolves catalog artifacts against a source.
type Service struct {
	source   Source
	catalog  Catalog
	recorder Recorder
	logger   *zap.Logger
}

// NewService creates a new distribution service. A nil recorder disables the download audit.
func NewService(source Source, catalog Catalog, logger *zap.Logger, recorder Recorder) *Service {
	return &Service{
		source:   source,
		catalog:  catalog,
		recorder: recorder,
		logger:   logger,
	}
}

// Catalog returns the served artifacts.
func (s *Service) Catalog() Catalog {
	return s.catalog
}

// Open opens the backing file of an artifact.
func (s *Service) Open(ctx context.Context, a Artifact) (*Object, error) {
	return s.source.Open(ctx, a.Path)
}

// RecordDownload stores a download event. It runs after the response body has
// been written, so it is bounded by recordTimeout instead of the request context.
// Failures are logged and never returned.
func (s *Service) RecordDownload(d *downloads.Download) {
	if s.recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := s.recorder.Record(ctx, d); err != nil {
		s.logger.Warn("Failed to record download",
			zap.String("artifact", d.Artifact),
			zap.String("ray_id", d.RayID),
			zap.Error(err))
	}
}

// ArtifactStatus is the result of checking one artifact.
type ArtifactStatus struct {
	Artifact
	Present bool   `json:"present"`
	Size    int64  `json:"size"`
	Error   string `json:"error,omitempty"`
}

// Report is the result of checking every artifact of the catalog.
type Report struct {
	Source    string           `json:"source"`
	Artifacts []ArtifactStatus `json:"artifacts"`
}

// Missing returns the names of artifacts that are absent or unreadable.
func (r Report) Missing() []string {
	var missing []string
	for _, a := range r.Artifacts {
		if !a.Present {
			missing = append(missing, a.Name)
		}
	}
	return missing
}

// Check opens every artifact once and reports whether it can be served.
func (s *Service) Check(ctx context.Context) Report {
	report := Report{Source: s.source.Name()}

	for _, a := range s.catalog {
		status := ArtifactStatus{Artifact: a}

		obj, err := s.Open(ctx, a)
		switch {
		case errors.Is(err, ErrArtifactNotFound):
			status.Error = "missing"
		case err != nil:
			status.Error = err.Error()
		default:
			status.Present = true
			status.Size = obj.Size
			_ = obj.Body.Close()
		}

		report.Artifacts = append(report.Artifacts, status)
	}
	return report
}
