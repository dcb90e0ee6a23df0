package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"hackathon-backend/store"
)

// translate maps driver errors onto the store error set.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return store.ErrDuplicate
	}

	return err
}

// repository provides the generic CRUD operations shared by every collection.
type repository[T any] struct {
	c *mongo.Collection
}

func (r repository[T]) insert(ctx context.Context, doc *T) error {
	_, err := r.c.InsertOne(ctx, doc)
	return translate(err)
}

func (r repository[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	var result T
	if err := r.c.FindOne(ctx, filter).Decode(&result); err != nil {
		return nil, translate(err)
	}

	return &result, nil
}

func (r repository[T]) findAll(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*T, error) {
	cursor, err := r.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	results := make([]*T, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, translate(err)
	}

	return results, nil
}

// findOneAndUpdate applies update and returns the document as it is afterwards.
func (r repository[T]) findOneAndUpdate(ctx context.Context, filter, update bson.M, upsert bool) (*T, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After).SetUpsert(upsert)

	var result T
	if err := r.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result); err != nil {
		return nil, translate(err)
	}

	return &result, nil
}

func (r repository[T]) deleteOne(ctx context.Context, filter bson.M) error {
	res, err := r.c.DeleteOne(ctx, filter)
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}

	return nil
}
