package downloads

import (
	"context"
	"fmt"
	"time"

	"ota-server/core/database"

	"gorm.io/gorm"
)

// Recorder writes and aggregates download events.
type Recorder struct {
	db *gorm.DB
}

// NewRecorder creates a recorder on an open connection.
func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// Migrate creates or updates the audit table.
func (r *Recorder) Migrate() error {
	if err := r.db.AutoMigrate(&Download{}); err != nil {
		return fmt.Errorf("failed to migrate downloads table: %w", err)
	}
	return nil
}

// Record inserts one download event.
func (r *Recorder) Record(ctx context.Context, d *Download) error {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		return fmt.Errorf("failed to record download of %s: %w", d.Artifact, err)
	}
	return nil
}

// Counts returns per-artifact totals ordered by artifact name.
func (r *Recorder) Counts(ctx context.Context) ([]Count, error) {
	type row struct {
		Artifact string
		Total    int64
		Bytes    int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&Download{}).
		Select("artifact, COUNT(*) AS total, COALESCE(SUM(bytes), 0) AS bytes").
		Group("artifact").
		Order("artifact").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count downloads: %w", err)
	}

	counts := make([]Count, 0, len(rows))
	for _, rw := range rows {
		c := Count{Artifact: rw.Artifact, Total: rw.Total, Bytes: rw.Bytes}

		var last Download
		err := r.db.WithContext(ctx).
			Where("artifact = ?", rw.Artifact).
			Order("created_at DESC").
			Limit(1).
			Find(&last).Error
		if err != nil {
			return nil, fmt.Errorf("failed to read last download of %s: %w", rw.Artifact, err)
		}
		c.Last = last.CreatedAt

		counts = append(counts, c)
	}
	return counts, nil
}

// MissingColumns reports audit columns absent from the database.
func (r *Recorder) MissingColumns() ([]string, error) {
	return database.MissingColumns(r.db, Download{}.TableName(), Columns)
}
