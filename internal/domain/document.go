package domain

import (
	"time"

	"github.com/google/uuid"
)

// Document is evidence or correspondence attached to an owner and optionally
// to an account and/or dispute. File bytes are stored outside this service.
type Document struct {
	ID               uuid.UUID
	OwnerID          uuid.UUID
	AccountID        *uuid.UUID
	DisputeID        *uuid.UUID
	Filename         string
	OriginalFilename string
	FilePath         string
	FileSize         *int64
	MimeType         *string
	Type             DocumentType
	Description      *string
	AIAnalysis       *string
	AIAnalyzedAt     *time.Time
	UploadedAt       time.Time
}
