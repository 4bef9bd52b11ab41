package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kotonoha-app/kotonoha-api/internal/core/domain"
)

const postCollection = "posts"

type MongoPostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{coll: db.Collection(postCollection)}
}

type mongoPost struct {
	ID          string     `bson:"_id"`
	Content     string     `bson:"content"`
	AuthorID    string     `bson:"author_id"`
	CreatedAt   time.Time  `bson:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at"`
	PublishedAt *time.Time `bson:"published_at,omitempty"`
	DeletedAt   *time.Time `bson:"deleted_at"`
}

func toMongoPost(p *domain.Post) mongoPost {
	return mongoPost{
		ID:          p.ID,
		Content:     p.Content,
		AuthorID:    p.AuthorID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		PublishedAt: p.PublishedAt,
		DeletedAt:   p.DeletedAt,
	}
}

func (mp *mongoPost) toDomain() *domain.Post {
	p := &domain.Post{
		ID:        mp.ID,
		Content:   mp.Content,
		AuthorID:  mp.AuthorID,
		CreatedAt: mp.CreatedAt.UTC(),
		UpdatedAt: mp.UpdatedAt.UTC(),
		DeletedAt: mp.DeletedAt,
	}
	if mp.PublishedAt != nil {
		t := mp.PublishedAt.UTC()
		p.PublishedAt = &t
	}
	return p
}

func (r *MongoPostRepository) Create(ctx context.Context, post *domain.Post) error {
	if _, err := r.coll.InsertOne(ctx, toMongoPost(post)); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *MongoPostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	var mp mongoPost
	if err := r.coll.FindOne(ctx, bson.M{"_id": id, "deleted_at": nil}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return mp.toDomain(), nil
}

// ListByAuthor returns the author's non-deleted posts, newest first.
// Publish-time filtering is the caller's concern.
func (r *MongoPostRepository) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"author_id": authorID, "deleted_at": nil}, opts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cur.Close(ctx)

	var posts []*domain.Post
	for cur.Next(ctx) {
		var mp mongoPost
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		posts = append(posts, mp.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (r *MongoPostRepository) Update(ctx context.Context, post *domain.Post) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": post.ID, "deleted_at": nil}, toMongoPost(post))
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *MongoPostRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id, "deleted_at": nil}, bson.M{
		"$set": bson.M{"deleted_at": at, "updated_at": at},
	})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.ModifiedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}
