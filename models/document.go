package models

import (
	"time"

	"github.com/google/uuid"
)

// AccessLevel controls who can view a document
type AccessLevel string

const (
	// AccessPublic documents are visible to any authenticated user
	AccessPublic AccessLevel = "public"

	// AccessPrivate documents are visible only to their owner
	AccessPrivate AccessLevel = "private"

	// AccessRole documents are visible to users sharing the owner's role
	AccessRole AccessLevel = "role"
)

// Valid returns true if the access level is one of the enumerated values
func (a AccessLevel) Valid() bool {
	switch a {
	case AccessPublic, AccessPrivate, AccessRole:
		return true
	}
	return false
}

// Document represents a shared document owned by a user
type Document struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	Title     string      `json:"title" db:"title"`
	Content   string      `json:"content" db:"content"`
	Access    AccessLevel `json:"access" db:"access"`
	OwnerID   uuid.UUID   `json:"owner_id" db:"owner_id"` // Set from the authenticated caller, never from client input
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Document model
func (Document) TableName() string {
	return "documents"
}

// NewDocument creates a new Document owned by the given user
func NewDocument(title, content string, access AccessLevel, ownerID uuid.UUID) *Document {
	now := time.Now()
	if access == "" {
		access = AccessPublic
	}
	return &Document{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		Access:    access,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsOwnedBy returns true if the document is owned by the given user
func (d *Document) IsOwnedBy(userID uuid.UUID) bool {
	return d.OwnerID == userID
}
