package endpoints

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"collab-relay-backend/internal/api"
	"collab-relay-backend/internal/model"
	documentservice "collab-relay-backend/internal/service/document"
)

type memoryRepository struct {
	mu        sync.Mutex
	documents map[string]model.DocumentItem
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{documents: make(map[string]model.DocumentItem)}
}

func (m *memoryRepository) GetDocument(ctx context.Context, documentID string) (model.DocumentItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.documents[model.DocumentPK(documentID)]
	if !ok {
		return model.DocumentItem{}, documentservice.ErrNotFound
	}
	return item, nil
}

func (m *memoryRepository) PutDocument(ctx context.Context, item model.DocumentItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents[item.PK] = item
	return nil
}

func newTestEndpoints() DocumentEndpoints {
	service := documentservice.New(newMemoryRepository())
	return NewDocumentEndpoints(service, "/api/snapshot/v1")
}

func doRequest(t *testing.T, handler func(http.ResponseWriter, *http.Request) error, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()

	if err := handler(rec, req); err != nil {
		httpErr, ok := err.(*api.HTTPError)
		if !ok {
			t.Fatalf("handler returned unexpected error type: %v", err)
		}
		rec.Code = httpErr.StatusCode
	}
	return rec
}

func TestDocumentSaveThenGet(t *testing.T) {
	endpoints := newTestEndpoints()

	saveBody := `{"workspaceId":"ws-1","data":"{\"ops\":[]}","updatedBy":"user-1"}`
	rec := doRequest(t, endpoints.Documents, http.MethodPut, "/api/snapshot/v1/documents/doc-1", saveBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("save status %d: %s", rec.Code, rec.Body)
	}

	rec = doRequest(t, endpoints.Documents, http.MethodGet, "/api/snapshot/v1/documents/doc-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status %d: %s", rec.Code, rec.Body)
	}

	var item model.DocumentItem
	if err := json.Unmarshal(rec.Body.Bytes(), &item); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if item.DocumentID != "doc-1" || item.Data != `{"ops":[]}` {
		t.Fatalf("unexpected item: %+v", item)
	}
}

func TestDocumentGetMissing(t *testing.T) {
	endpoints := newTestEndpoints()

	rec := doRequest(t, endpoints.Documents, http.MethodGet, "/api/snapshot/v1/documents/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}
}

func TestDocumentInvalidBody(t *testing.T) {
	endpoints := newTestEndpoints()

	rec := doRequest(t, endpoints.Documents, http.MethodPut, "/api/snapshot/v1/documents/doc-1", "{broken")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
}

func TestDocumentMissingIDInPath(t *testing.T) {
	endpoints := newTestEndpoints()

	rec := doRequest(t, endpoints.Documents, http.MethodGet, "/api/snapshot/v1/documents/", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}
}

func TestDocumentMethodNotAllowed(t *testing.T) {
	endpoints := newTestEndpoints()

	rec := doRequest(t, endpoints.Documents, http.MethodDelete, "/api/snapshot/v1/documents/doc-1", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status %d, want 405", rec.Code)
	}
}
