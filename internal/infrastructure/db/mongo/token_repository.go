package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kotonoha-app/kotonoha-api/internal/core/domain"
)

const tokenCollection = "user_tokens"

type MongoTokenRepository struct {
	coll *mongo.Collection
}

func NewTokenRepository(db *mongo.Database) *MongoTokenRepository {
	return &MongoTokenRepository{coll: db.Collection(tokenCollection)}
}

// The token string is the document key: lookups, revocations and the
// uniqueness guarantee all ride on _id.
type mongoToken struct {
	Token     string     `bson:"_id"`
	UserID    string     `bson:"user_id"`
	ExpiredAt time.Time  `bson:"expired_at"`
	CreatedAt time.Time  `bson:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at"`
}

func (r *MongoTokenRepository) Create(ctx context.Context, token *domain.Token) error {
	doc := mongoToken{
		Token:     token.Token,
		UserID:    token.UserID,
		ExpiredAt: token.ExpiredAt,
		CreatedAt: token.CreatedAt,
		UpdatedAt: token.UpdatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}

// validFilter matches exactly the rows that grant authority right now:
// token equality, not revoked, expiry in the future. One filter shared by
// verification and revocation so the two can never disagree.
func validFilter(token string, now time.Time) bson.M {
	return bson.M{
		"_id":        token,
		"deleted_at": nil,
		"expired_at": bson.M{"$gt": now},
	}
}

func (r *MongoTokenRepository) FindValid(ctx context.Context, token string, now time.Time) (*domain.Token, error) {
	var mt mongoToken
	if err := r.coll.FindOne(ctx, validFilter(token, now)).Decode(&mt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("find token: %w", err)
	}

	return &domain.Token{
		Token:     mt.Token,
		UserID:    mt.UserID,
		ExpiredAt: mt.ExpiredAt.UTC(),
		CreatedAt: mt.CreatedAt.UTC(),
		UpdatedAt: mt.UpdatedAt.UTC(),
		DeletedAt: mt.DeletedAt,
	}, nil
}

// DeleteValid revokes by soft-deleting the matching valid row. Expired or
// already revoked tokens do not match and report not found.
func (r *MongoTokenRepository) DeleteValid(ctx context.Context, token string, now time.Time) error {
	res, err := r.coll.UpdateOne(ctx, validFilter(token, now), bson.M{
		"$set": bson.M{"deleted_at": now, "updated_at": now},
	})
	if err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	if res.ModifiedCount == 0 {
		return domain.ErrTokenNotFound
	}
	return nil
}
