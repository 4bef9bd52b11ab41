package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kotonoha-app/kotonoha-api/internal/core/domain"
)

const userCollection = "users"

type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(userCollection)}
}

// _id equals the owning credential's id, so the primary key enforces the
// one-profile-per-account invariant. Birthday is stored as "2006-01-02" to
// keep it a calendar date, not an instant.
type mongoUser struct {
	ID          string     `bson:"_id"`
	IDName      string     `bson:"id_name"`
	DisplayName string     `bson:"display_name"`
	Description string     `bson:"description"`
	Birthday    *string    `bson:"birthday,omitempty"`
	Website     string     `bson:"website"`
	IsPrivate   bool       `bson:"is_private"`
	CreatedAt   time.Time  `bson:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at"`
	DeletedAt   *time.Time `bson:"deleted_at"`
}

func toMongoUser(u *domain.User) mongoUser {
	mu := mongoUser{
		ID:          u.ID,
		IDName:      u.IDName,
		DisplayName: u.DisplayName,
		Description: u.Description,
		Website:     u.Website,
		IsPrivate:   u.IsPrivate,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
		DeletedAt:   u.DeletedAt,
	}
	if u.Birthday != nil {
		s := u.Birthday.Format("2006-01-02")
		mu.Birthday = &s
	}
	return mu
}

func (mu *mongoUser) toDomain() (*domain.User, error) {
	u := &domain.User{
		ID:          mu.ID,
		IDName:      mu.IDName,
		DisplayName: mu.DisplayName,
		Description: mu.Description,
		Website:     mu.Website,
		IsPrivate:   mu.IsPrivate,
		CreatedAt:   mu.CreatedAt.UTC(),
		UpdatedAt:   mu.UpdatedAt.UTC(),
		DeletedAt:   mu.DeletedAt,
	}
	if mu.Birthday != nil {
		t, err := time.Parse("2006-01-02", *mu.Birthday)
		if err != nil {
			return nil, fmt.Errorf("decode birthday: %w", err)
		}
		d := domain.Date{Time: t}
		u.Birthday = &d
	}
	return u, nil
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, err := r.coll.InsertOne(ctx, toMongoUser(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// _id collision means the account already onboarded; any other
			// duplicate is the handle's unique index.
			if strings.Contains(err.Error(), "_id_") {
				return domain.ErrUserAlreadyCreated
			}
			return domain.ErrHandleTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"_id": id, "deleted_at": nil}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain()
}

func (r *MongoUserRepository) Update(ctx context.Context, user *domain.User) error {
	mu := toMongoUser(user)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID, "deleted_at": nil}, mu)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
