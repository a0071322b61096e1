package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	UsersCollection        = "users"
	PendingUsersCollection = "pending_users"
	WorkshopsCollection    = "workshops"
	ReviewsCollection      = "reviews"
	TokensCollection       = "tokens"
)

// PendingUserTTL is how long an unverified signup survives.
const PendingUserTTL = 24 * time.Hour

// EnsureIndexes creates the indexes the repositories depend on. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "registered_workshops", Value: 1}}},
			{Keys: bson.D{{Key: "role", Value: 1}}},
		},
		PendingUsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}},
			{
				Keys:    bson.D{{Key: "created_at", Value: 1}},
				Options: options.Index().SetExpireAfterSeconds(int32(PendingUserTTL.Seconds())),
			},
		},
		WorkshopsCollection: {
			{Keys: bson.D{{Key: "start_date", Value: 1}}},
			{Keys: bson.D{{Key: "instructor_ids", Value: 1}}},
		},
		ReviewsCollection: {
			{
				Keys:    bson.D{{Key: "user", Value: 1}, {Key: "workshop", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "workshop", Value: 1}}},
			{Keys: bson.D{{Key: "featured", Value: 1}}},
		},
		TokensCollection: {
			{Keys: bson.D{{Key: "verifier", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
		},
	}
	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
