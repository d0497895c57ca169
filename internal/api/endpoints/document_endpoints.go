package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	documentservice "collab-relay-backend/internal/service/document"
)

type DocumentEndpoints interface {
	Documents(http.ResponseWriter, *http.Request) error
}

type DocumentPaths struct {
	DocumentPrefix string
}

type documentEndpoints struct {
	service *documentservice.Service
	paths   DocumentPaths
}

func NewDocumentEndpoints(service *documentservice.Service, prefix string) DocumentEndpoints {
	base := strings.TrimRight(prefix, "/")
	return NewDocumentEndpointsWithPaths(service, DocumentPaths{
		DocumentPrefix: base + "/documents/",
	})
}

func NewDocumentEndpointsWithPaths(service *documentservice.Service, paths DocumentPaths) DocumentEndpoints {
	return &documentEndpoints{
		service: service,
		paths:   paths,
	}
}

func (h *documentEndpoints) Documents(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleGetDocument,
		http.MethodPut: h.handleSaveDocument,
	})
}

func (h *documentEndpoints) handleGetDocument(w http.ResponseWriter, r *http.Request) error {
	documentID, err := h.documentIDFromPath(r.URL.Path)
	if err != nil {
		return err
	}

	item, err := h.service.Get(r.Context(), documentID)
	if err != nil {
		return h.serviceError(err)
	}
	return WriteJSON(w, http.StatusOK, item)
}

func (h *documentEndpoints) handleSaveDocument(w http.ResponseWriter, r *http.Request) error {
	documentID, err := h.documentIDFromPath(r.URL.Path)
	if err != nil {
		return err
	}

	var req documentservice.SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request body",
			ErrorLog:   fmt.Errorf("decode save request: %w", err),
		}
	}

	item, err := h.service.Save(r.Context(), documentID, req)
	if err != nil {
		return h.serviceError(err)
	}
	return WriteJSON(w, http.StatusOK, item)
}

func (h *documentEndpoints) documentIDFromPath(p string) (string, error) {
	if !strings.HasPrefix(p, h.paths.DocumentPrefix) {
		return "", &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    "Document not found",
			ErrorLog:   fmt.Errorf("path %q outside document prefix", p),
		}
	}
	documentID := strings.Trim(strings.TrimPrefix(p, h.paths.DocumentPrefix), "/")
	if documentID == "" || strings.Contains(documentID, "/") {
		return "", &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    "Document not found",
			ErrorLog:   fmt.Errorf("invalid document id in path %q", p),
		}
	}
	return documentID, nil
}

func (h *documentEndpoints) serviceError(err error) error {
	if err == nil {
		return nil
	}

	svcErr, ok := err.(*documentservice.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("document service: %w", err),
		}
	}

	var errorLog error
	if svcErr.Err != nil {
		errorLog = fmt.Errorf("%s: %w", svcErr.Message, svcErr.Err)
	} else {
		errorLog = svcErr
	}

	switch svcErr.Code {
	case documentservice.ErrorCodeValidation:
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: svcErr.Message, ErrorLog: errorLog}
	case documentservice.ErrorCodeNotFound:
		return &HTTPError{StatusCode: http.StatusNotFound, Message: svcErr.Message, ErrorLog: errorLog}
	default:
		return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "Internal server error", ErrorLog: errorLog}
	}
}
