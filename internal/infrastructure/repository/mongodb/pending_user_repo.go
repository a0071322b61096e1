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
)

// PendingUserRepository stores signups awaiting email verification.
// Documents expire through a TTL index on created_at.
type PendingUserRepository struct {
	collection *mongo.Collection
}

var _ contract.IPendingUserRepository = (*PendingUserRepository)(nil)

func NewPendingUserRepository(collection *mongo.Collection) *PendingUserRepository {
	return &PendingUserRepository{collection: collection}
}

func (r *PendingUserRepository) CreatePendingUser(ctx context.Context, pending *entity.PendingUser) error {
	_, err := r.collection.InsertOne(ctx, pending)
	return err
}

func (r *PendingUserRepository) GetPendingUserByID(ctx context.Context, id string) (*entity.PendingUser, error) {
	var p entity.PendingUser
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("pending registration %w", domainerrors.ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

func (r *PendingUserRepository) DeletePendingUsersByEmail(ctx context.Context, email string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"email": email})
	return err
}

func (r *PendingUserRepository) UpdateVerificationCode(ctx context.Context, id, code string, expiresAt time.Time) error {
	update := bson.M{"$set": bson.M{"verification_code": code, "code_expires_at": expiresAt}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("pending registration %w", domainerrors.ErrNotFound)
	}
	return nil
}

// ClaimPendingUser is a find-and-delete: of two concurrent verifications only one gets the document.
// A resend that re-armed the code in between makes the claim miss.
func (r *PendingUserRepository) ClaimPendingUser(ctx context.Context, id, code string) (*entity.PendingUser, error) {
	var p entity.PendingUser
	filter := bson.M{"_id": id, "verification_code": code}
	if err := r.collection.FindOneAndDelete(ctx, filter).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("pending registration %w", domainerrors.ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

func (r *PendingUserRepository) DeletePendingUser(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
