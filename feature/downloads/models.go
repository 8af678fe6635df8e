package downloads

import "time"

// Download is one served artifact, as recorded in the audit table.
type Download struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Artifact  string    `gorm:"size:64;index" json:"artifact"`
	RemoteIP  string    `gorm:"size:64" json:"remote_ip"`
	UserAgent string    `gorm:"size:512" json:"user_agent"`
	RayID     string    `gorm:"size:36" json:"ray_id"`
	Bytes     int64     `json:"bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the audit table name.
func (Download) TableName() string {
	return "downloads"
}

// Columns lists the columns the recorder writes.
var Columns = []string{"id", "artifact", "remote_ip", "user_agent", "ray_id", "bytes", "created_at"}

// Count aggregates downloads of one artifact.
type Count struct {
	Artifact string    `json:"artifact"`
	Total    int64     `json:"total"`
	Bytes    int64     `json:"bytes"`
	Last     time.Time `json:"last"`
}
