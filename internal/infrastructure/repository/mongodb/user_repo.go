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

type MongoUserRepository struct {
	collection *mongo.Collection
}

var _ contract.IUserRepository = (*MongoUserRepository)(nil)

func NewMongoUserRepository(collection *mongo.Collection) *MongoUserRepository {
	return &MongoUserRepository{collection: collection}
}

func (r *MongoUserRepository) CreateUser(ctx context.Context, user *entity.User) error {
	_, err := r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %s", domainerrors.ErrDuplicateEmail, user.Email)
	}
	return err
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var user entity.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %w", domainerrors.ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) findMany(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*entity.User, error) {
	cursor, err := r.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	users := []*entity.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *MongoUserRepository) GetUsersByIDs(ctx context.Context, ids []string) ([]*entity.User, error) {
	if len(ids) == 0 {
		return []*entity.User{}, nil
	}
	return r.findMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *MongoUserRepository) GetUsersByRole(ctx context.Context, role entity.UserRole) ([]*entity.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "surname", Value: 1}, {Key: "name", Value: 1}})
	return r.findMany(ctx, bson.M{"role": role}, opts)
}

func (r *MongoUserRepository) GetRegisteredUsers(ctx context.Context, workshopID string) ([]*entity.User, error) {
	return r.findMany(ctx, bson.M{"registered_workshops": workshopID})
}

func (r *MongoUserRepository) UpdateUserFields(ctx context.Context, id string, fields map[string]interface{}) error {
	set := bson.M{"updated_at": time.Now()}
	for k, v := range fields {
		set[k] = v
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %w", domainerrors.ErrNotFound)
	}
	return nil
}

func (r *MongoUserRepository) UpdateUserPassword(ctx context.Context, id string, hashedPassword string) error {
	return r.UpdateUserFields(ctx, id, map[string]interface{}{"password_hash": hashedPassword})
}

func (r *MongoUserRepository) AddRegisteredWorkshop(ctx context.Context, userID, workshopID string) (bool, error) {
	filter := bson.M{"_id": userID, "registered_workshops": bson.M{"$ne": workshopID}}
	update := bson.M{"$addToSet": bson.M{"registered_workshops": workshopID}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}

func (r *MongoUserRepository) RemoveRegisteredWorkshop(ctx context.Context, userID, workshopID string) (bool, error) {
	filter := bson.M{"_id": userID, "registered_workshops": workshopID}
	update := bson.M{"$pull": bson.M{"registered_workshops": workshopID}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}

func (r *MongoUserRepository) RemoveWorkshopFromAll(ctx context.Context, workshopID string) (int64, error) {
	filter := bson.M{"registered_workshops": workshopID}
	update := bson.M{"$pull": bson.M{"registered_workshops": workshopID}}
	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// AddBadge guards on badges.workshop_id so two concurrent awards cannot both succeed.
func (r *MongoUserRepository) AddBadge(ctx context.Context, userID string, badge entity.Badge) (bool, error) {
	filter := bson.M{"_id": userID, "badges.workshop_id": bson.M{"$ne": badge.WorkshopID}}
	update := bson.M{"$push": bson.M{"badges": badge}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}

func (r *MongoUserRepository) PushNotification(ctx context.Context, userIDs []string, n entity.Notification) error {
	if len(userIDs) == 0 {
		return nil
	}
	update := bson.M{"$push": bson.M{"notifications": bson.M{
		"$each":     []entity.Notification{n},
		"$position": 0,
		"$slice":    entity.MaxNotifications,
	}}}
	_, err := r.collection.UpdateMany(ctx, bson.M{"_id": bson.M{"$in": userIDs}}, update)
	return err
}

func (r *MongoUserRepository) MarkNotificationsRead(ctx context.Context, userID string) error {
	update := bson.M{"$set": bson.M{"notifications.$[].read": true}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %w", domainerrors.ErrNotFound)
	}
	return nil
}

func (r *MongoUserRepository) DeleteUser(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("user %w", domainerrors.ErrNotFound)
	}
	return nil
}
