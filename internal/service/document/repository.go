package document

import (
	"context"
	"errors"

	"collab-relay-backend/internal/database"
	"collab-relay-backend/internal/model"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var ErrNotFound = errors.New("document not found")

type Repository interface {
	GetDocument(ctx context.Context, documentID string) (model.DocumentItem, error)
	PutDocument(ctx context.Context, item model.DocumentItem) error
}

type dynamoRepository struct {
	db *database.Database
}

func NewRepository(db *database.Database) Repository {
	return &dynamoRepository{db: db}
}

func (r *dynamoRepository) GetDocument(ctx context.Context, documentID string) (model.DocumentItem, error) {
	key := map[string]types.AttributeValue{
		"pk": database.AttrString(model.DocumentPK(documentID)),
	}

	var item model.DocumentItem
	err := r.db.Client.GetItem(ctx, model.DocumentsTable, key, &item)
	if err != nil {
		if errors.Is(err, database.ErrItemNotFound) {
			return model.DocumentItem{}, ErrNotFound
		}
		return model.DocumentItem{}, err
	}
	return item, nil
}

func (r *dynamoRepository) PutDocument(ctx context.Context, item model.DocumentItem) error {
	return r.db.Client.PutItem(ctx, model.DocumentsTable, item)
}
