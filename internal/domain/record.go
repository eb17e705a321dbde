package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Record is the lifecycle shared by every persisted entity. It is embedded by
// value so gorm flattens the columns into each table.
//
// ID is the internal row key and never leaves the process. PublicID is the
// only identifier exposed to callers; it is assigned once on insert and never
// changes. DeletedAt marks a soft-deleted row: gorm's default scope hides
// such rows, and Unscoped queries see them again.
type Record struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"-"`
	PublicID  uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"id"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

// BeforeCreate assigns a public identifier when the caller did not choose one.
func (r *Record) BeforeCreate(*gorm.DB) error {
	if r.PublicID == uuid.Nil {
		r.PublicID = uuid.New()
	}
	return nil
}

// Base returns the embedded record. Every entity gets it by embedding Record.
func (r *Record) Base() *Record {
	return r
}

// Active reports whether the record is visible in the default scope.
func (r *Record) Active() bool {
	return !r.DeletedAt.Valid
}

// MarkDeleted stamps the record as soft-deleted at t. Calling it again on a
// deleted record moves the stamp forward.
func (r *Record) MarkDeleted(t time.Time) {
	r.DeletedAt = gorm.DeletedAt{Time: t, Valid: true}
	r.UpdatedAt = t
}

// MarkRestored clears the deletion stamp. It reports false when the record
// was already active, in which case nothing changes.
func (r *Record) MarkRestored(t time.Time) bool {
	if r.Active() {
		return false
	}
	r.DeletedAt = gorm.DeletedAt{}
	r.UpdatedAt = t
	return true
}

// Entity is implemented by every registered model.
type Entity interface {
	Kind() Kind
	Base() *Record
}

// GameData is the shared shape of static catalog entries. SourceID is the
// identifier from the upstream game data dump; it is optional and never rendered.
type GameData struct {
	Record
	SourceID    *int64 `gorm:"uniqueIndex" json:"-"`
	Name        string `gorm:"size:200;not null;index" json:"name" validate:"required,max=200"`
	Description string `gorm:"type:text;not null;default:''" json:"description"`
}
