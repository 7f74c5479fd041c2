package models

import "time"

// SnapshotVersion is the schema version written by this build.
const SnapshotVersion = 1

// Section keys as they appear in a snapshot.
const (
	SectionDefault      = "default"
	SectionUserProjects = "userProjects"
)

// Names of the built-in projects.
const (
	InboxName    = "Inbox"
	TodayName    = "Today"
	UpcomingName = "Upcoming"
)

// SectionRecord is one named list of projects.
type SectionRecord struct {
	Title string          `json:"title"`
	Items []ProjectRecord `json:"items"`
}

// Snapshot is the full persisted state of the registry.
type Snapshot struct {
	Version      int           `json:"version,omitempty"`
	Default      SectionRecord `json:"default"`
	UserProjects SectionRecord `json:"userProjects"`
}

// DefaultSnapshot returns the state installed when nothing has been persisted.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Version: SnapshotVersion,
		Default: SectionRecord{
			Title: "Default",
			Items: []ProjectRecord{
				{Name: InboxName, Active: true, Preserve: true, Tasks: []TaskRecord{}},
				{Name: TodayName, Preserve: true, Dummy: true, Tasks: []TaskRecord{}},
				{Name: UpcomingName, Preserve: true, Dummy: true, Tasks: []TaskRecord{}},
			},
		},
		UserProjects: SectionRecord{
			Title: "Projects",
			Items: []ProjectRecord{},
		},
	}
}

// StoredSnapshot is the database row holding one encoded snapshot per storage key.
type StoredSnapshot struct {
	Key       string    `json:"key" gorm:"column:storage_key;primaryKey"`
	Data      string    `json:"data" gorm:"type:text;not null"`
	Version   int       `json:"version" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for StoredSnapshot Model
func (StoredSnapshot) TableName() string {
	return "snapshots"
}
