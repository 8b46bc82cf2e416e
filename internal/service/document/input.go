package document

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/credit-disputer/internal/domain"
)

// AttachInput holds the metadata of an uploaded file.
type AttachInput struct {
	AccountID        *uuid.UUID
	DisputeID        *uuid.UUID
	OriginalFilename string
	FilePath         string
	FileSize         *int64
	MimeType         *string
	Type             string
	Description      *string
}

// Validate checks all fields and collects all errors.
func (i AttachInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.OriginalFilename) == "" {
		errs = append(errs, domain.FieldError{Field: "original_filename", Message: "required"})
	} else if len(i.OriginalFilename) > 255 {
		errs = append(errs, domain.FieldError{Field: "original_filename", Message: "max 255 characters"})
	}
	if strings.TrimSpace(i.FilePath) == "" {
		errs = append(errs, domain.FieldError{Field: "file_path", Message: "required"})
	}
	if i.FileSize != nil && *i.FileSize < 0 {
		errs = append(errs, domain.FieldError{Field: "file_size", Message: "must be non-negative"})
	}

	t := domain.DocumentType(i.Type)
	switch {
	case i.Type == "":
		errs = append(errs, domain.FieldError{Field: "document_type", Message: "required"})
	case !t.IsValid():
		errs = append(errs, domain.FieldError{Field: "document_type", Message: "unknown document type"})
	case t == domain.DocumentTypeBureauResponse && i.DisputeID == nil:
		errs = append(errs, domain.FieldError{Field: "dispute_id", Message: "required for a bureau response"})
	}

	if i.Description != nil && len(*i.Description) > 2000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 2000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput filters the caller's documents.
type ListInput struct {
	AccountID *uuid.UUID
	DisputeID *uuid.UUID
	Type      string
	Limit     int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError
	if i.Type != "" && !domain.DocumentType(i.Type).IsValid() {
		errs = append(errs, domain.FieldError{Field: "document_type", Message: "unknown document type"})
	}
	if i.Limit < 0 || i.Limit > 500 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 500"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
