package model

import "fmt"

const (
	DocumentsTable = "Documents"
)

// DocumentItem is one full document snapshot, saved by the client's debounced
// autosave and re-read on reconnect resync. Data holds the serialized editor
// contents and is opaque to this service.
type DocumentItem struct {
	PK          string `dynamodbav:"pk" json:"-"`
	DocumentID  string `dynamodbav:"documentId" json:"documentId"`
	WorkspaceID string `dynamodbav:"workspaceId" json:"workspaceId,omitempty"`
	Data        string `dynamodbav:"data" json:"data"`
	UpdatedAt   string `dynamodbav:"updatedAt" json:"updatedAt"`
	UpdatedBy   string `dynamodbav:"updatedBy" json:"updatedBy,omitempty"`
}

func DocumentPK(documentID string) string {
	return fmt.Sprintf("DOC#%s", documentID)
}
