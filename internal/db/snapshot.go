package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tippy-tappy/internal/tipping"
)

// DefaultSnapshotName is the row the server and the fixture loader share.
const DefaultSnapshotName = "default"

// StoreSnapshot holds the latest serialized aggregate of one store. Each
// write replaces the row and stamps a fresh revision.
type StoreSnapshot struct {
	Name      string         `gorm:"primaryKey;size:64"`
	Revision  uuid.UUID      `gorm:"type:uuid;not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
}

func (StoreSnapshot) TableName() string {
	return "store_snapshots"
}

// SnapshotRepo is a tipping.Backend backed by the store_snapshots table.
type SnapshotRepo struct {
	conn *gorm.DB
	name string
	// LastRevision is the revision written by the most recent successful Write.
	LastRevision uuid.UUID
}

var _ tipping.Backend = (*SnapshotRepo)(nil)

func NewSnapshotRepo(conn *gorm.DB, name string) *SnapshotRepo {
	if name == "" {
		name = DefaultSnapshotName
	}
	return &SnapshotRepo{conn: conn, name: name}
}

func (r *SnapshotRepo) Read(ctx context.Context) ([]byte, error) {
	var record StoreSnapshot
	err := r.conn.WithContext(ctx).Where("name = ?", r.name).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, tipping.ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	return []byte(record.Payload), nil
}

func (r *SnapshotRepo) Write(ctx context.Context, payload []byte) error {
	record := newSnapshotRecord(r.name, payload, time.Now().UTC())
	err := r.conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"revision", "payload", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return err
	}
	r.LastRevision = record.Revision
	return nil
}

func newSnapshotRecord(name string, payload []byte, now time.Time) StoreSnapshot {
	return StoreSnapshot{
		Name:      name,
		Revision:  uuid.New(),
		Payload:   datatypes.JSON(payload),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
