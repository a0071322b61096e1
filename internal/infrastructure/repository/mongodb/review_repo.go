package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/contract"
	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
	domainerrors "github.com/mikiasgoitom/GlitchLab/internal/domain/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReviewRepository struct {
	collection *mongo.Collection
}

var _ contract.IReviewRepository = (*ReviewRepository)(nil)

func NewReviewRepository(collection *mongo.Collection) *ReviewRepository {
	return &ReviewRepository{collection: collection}
}

// CreateReview relies on the unique (user, workshop) index.
func (r *ReviewRepository) CreateReview(ctx context.Context, review *entity.Review) error {
	_, err := r.collection.InsertOne(ctx, review)
	if mongo.IsDuplicateKeyError(err) {
		return domainerrors.ErrDuplicateReview
	}
	return err
}

func (r *ReviewRepository) findOne(ctx context.Context, filter bson.M) (*entity.Review, error) {
	var review entity.Review
	if err := r.collection.FindOne(ctx, filter).Decode(&review); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("review %w", domainerrors.ErrNotFound)
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) GetReviewByID(ctx context.Context, id string) (*entity.Review, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ReviewRepository) GetReviewByUserAndWorkshop(ctx context.Context, userID, workshopID string) (*entity.Review, error) {
	return r.findOne(ctx, bson.M{"user": userID, "workshop": workshopID})
}

func (r *ReviewRepository) findMany(ctx context.Context, filter bson.M) ([]*entity.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	reviews := []*entity.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewRepository) GetReviewsByWorkshop(ctx context.Context, workshopID string) ([]*entity.Review, error) {
	return r.findMany(ctx, bson.M{"workshop": workshopID})
}

func (r *ReviewRepository) GetReviewsByUser(ctx context.Context, userID string) ([]*entity.Review, error) {
	return r.findMany(ctx, bson.M{"user": userID})
}

func (r *ReviewRepository) GetFeaturedReviews(ctx context.Context) ([]*entity.Review, error) {
	return r.findMany(ctx, bson.M{"featured": true})
}

func (r *ReviewRepository) UpdateReview(ctx context.Context, id string, updates map[string]interface{}) error {
	set := bson.M{"updated_at": time.Now()}
	for k, v := range updates {
		set[k] = v
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("review %w", domainerrors.ErrNotFound)
	}
	return nil
}

func (r *ReviewRepository) DeleteReview(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("review %w", domainerrors.ErrNotFound)
	}
	return nil
}

func (r *ReviewRepository) DeleteReviewsByUser(ctx context.Context, userID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"user": userID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
