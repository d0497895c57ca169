package document

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"collab-relay-backend/internal/model"
)

type ErrorCode string

const (
	ErrorCodeValidation ErrorCode = "validation_error"
	ErrorCodeNotFound   ErrorCode = "not_found"
	ErrorCodeInternal   ErrorCode = "internal_error"
)

type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Snapshots above this size are rejected rather than truncated; the editor
// serializes documents far below it in practice.
const maxSnapshotBytes = 1 << 20

type Service struct {
	repository Repository
}

func New(repository Repository) *Service {
	return &Service{repository: repository}
}

// Get loads the latest saved snapshot of a document. This is the resync path
// for clients reconnecting after missing relay traffic.
func (s *Service) Get(ctx context.Context, documentID string) (model.DocumentItem, error) {
	if documentID == "" {
		return model.DocumentItem{}, newError(ErrorCodeValidation, "document id is required", nil)
	}

	item, err := s.repository.GetDocument(ctx, documentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.DocumentItem{}, newError(ErrorCodeNotFound, "document not found", err)
		}
		return model.DocumentItem{}, newError(ErrorCodeInternal, "failed to load document", err)
	}
	return item, nil
}

type SaveRequest struct {
	WorkspaceID string `json:"workspaceId"`
	Data        string `json:"data"`
	UpdatedBy   string `json:"updatedBy"`
}

// Save overwrites the stored snapshot. Last write wins; the relay's live
// fan-out keeps concurrent editors converged between saves.
func (s *Service) Save(ctx context.Context, documentID string, req SaveRequest) (model.DocumentItem, error) {
	if documentID == "" {
		return model.DocumentItem{}, newError(ErrorCodeValidation, "document id is required", nil)
	}
	if req.Data == "" {
		return model.DocumentItem{}, newError(ErrorCodeValidation, "snapshot data is required", nil)
	}
	if len(req.Data) > maxSnapshotBytes {
		return model.DocumentItem{}, newError(ErrorCodeValidation, "snapshot exceeds size limit", nil)
	}
	if !json.Valid([]byte(req.Data)) {
		return model.DocumentItem{}, newError(ErrorCodeValidation, "snapshot data is not valid JSON", nil)
	}

	item := model.DocumentItem{
		PK:          model.DocumentPK(documentID),
		DocumentID:  documentID,
		WorkspaceID: req.WorkspaceID,
		Data:        req.Data,
		UpdatedAt:   time.Now().UTC().Format(time.RFC3339),
		UpdatedBy:   req.UpdatedBy,
	}

	if err := s.repository.PutDocument(ctx, item); err != nil {
		return model.DocumentItem{}, newError(ErrorCodeInternal, "failed to save document", err)
	}
	return item, nil
}
