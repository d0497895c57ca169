package document

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"collab-relay-backend/internal/model"
)

type memoryRepository struct {
	mu        sync.Mutex
	documents map[string]model.DocumentItem
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		documents: make(map[string]model.DocumentItem),
	}
}

func (m *memoryRepository) GetDocument(ctx context.Context, documentID string) (model.DocumentItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.documents[model.DocumentPK(documentID)]
	if !ok {
		return model.DocumentItem{}, ErrNotFound
	}
	return item, nil
}

func (m *memoryRepository) PutDocument(ctx context.Context, item model.DocumentItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents[item.PK] = item
	return nil
}

func expectCode(t *testing.T, err error, code ErrorCode) {
	t.Helper()
	var svcErr *Error
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if svcErr.Code != code {
		t.Fatalf("error code %s, want %s", svcErr.Code, code)
	}
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	service := New(newMemoryRepository())

	saved, err := service.Save(context.Background(), "doc-1", SaveRequest{
		WorkspaceID: "ws-1",
		Data:        `{"ops":[{"insert":"hello"}]}`,
		UpdatedBy:   "user-1",
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.UpdatedAt == "" {
		t.Fatal("save did not stamp updatedAt")
	}

	got, err := service.Get(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Data != saved.Data || got.WorkspaceID != "ws-1" || got.UpdatedBy != "user-1" {
		t.Fatalf("loaded snapshot differs: %+v", got)
	}
}

func TestGetUnknownDocument(t *testing.T) {
	service := New(newMemoryRepository())

	_, err := service.Get(context.Background(), "missing")
	expectCode(t, err, ErrorCodeNotFound)
}

func TestSaveOverwritesPreviousSnapshot(t *testing.T) {
	service := New(newMemoryRepository())

	for _, data := range []string{`{"v":1}`, `{"v":2}`} {
		if _, err := service.Save(context.Background(), "doc-1", SaveRequest{Data: data}); err != nil {
			t.Fatalf("save %s: %v", data, err)
		}
	}

	got, err := service.Get(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Data != `{"v":2}` {
		t.Fatalf("data %s, want latest snapshot", got.Data)
	}
}

func TestSaveValidation(t *testing.T) {
	service := New(newMemoryRepository())

	tests := []struct {
		name       string
		documentID string
		req        SaveRequest
	}{
		{"missing id", "", SaveRequest{Data: `{}`}},
		{"missing data", "doc-1", SaveRequest{}},
		{"invalid json", "doc-1", SaveRequest{Data: `{"broken"`}},
		{"oversized", "doc-1", SaveRequest{Data: `"` + strings.Repeat("a", maxSnapshotBytes) + `"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Save(context.Background(), tt.documentID, tt.req)
			expectCode(t, err, ErrorCodeValidation)
		})
	}
}

func TestGetValidation(t *testing.T) {
	service := New(newMemoryRepository())

	_, err := service.Get(context.Background(), "")
	expectCode(t, err, ErrorCodeValidation)
}
