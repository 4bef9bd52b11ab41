package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique indexes the repositories rely on.
// Uniqueness is partial: it only binds rows that are not soft-deleted, so a
// deleted account frees its email and handle. The $type filter matches only
// documents where deleted_at is present as BSON null, which is why the
// document structs marshal deleted_at without omitempty. Safe to call on
// every boot.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	notDeleted := bson.M{"deleted_at": bson.M{"$type": "null"}}

	_, err := db.Collection(credentialCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(notDeleted),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}

	_, err = db.Collection(userCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "id_name", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(notDeleted),
	})
	if err != nil {
		return fmt.Errorf("create id_name index: %w", err)
	}

	_, err = db.Collection(tokenCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create token user_id index: %w", err)
	}

	_, err = db.Collection(postCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "author_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create post author index: %w", err)
	}

	return nil
}
