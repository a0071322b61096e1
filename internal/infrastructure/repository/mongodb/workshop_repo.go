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

type WorkshopRepository struct {
	collection *mongo.Collection
}

var _ contract.IWorkshopRepository = (*WorkshopRepository)(nil)

func NewWorkshopRepository(collection *mongo.Collection) *WorkshopRepository {
	return &WorkshopRepository{collection: collection}
}

func notFoundWorkshop() error {
	return fmt.Errorf("workshop %w", domainerrors.ErrNotFound)
}

func (r *WorkshopRepository) CreateWorkshop(ctx context.Context, w *entity.Workshop) error {
	_, err := r.collection.InsertOne(ctx, w)
	return err
}

func (r *WorkshopRepository) GetWorkshopByID(ctx context.Context, id string) (*entity.Workshop, error) {
	var w entity.Workshop
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&w); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFoundWorkshop()
		}
		return nil, err
	}
	return &w, nil
}

func (r *WorkshopRepository) find(ctx context.Context, filter bson.M) ([]*entity.Workshop, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	workshops := []*entity.Workshop{}
	if err := cursor.All(ctx, &workshops); err != nil {
		return nil, err
	}
	return workshops, nil
}

func (r *WorkshopRepository) GetWorkshopsByIDs(ctx context.Context, ids []string) ([]*entity.Workshop, error) {
	if len(ids) == 0 {
		return []*entity.Workshop{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// ListWorkshops builds the filter from the set options only.
func (r *WorkshopRepository) ListWorkshops(ctx context.Context, opts *contract.WorkshopFilterOptions) ([]*entity.Workshop, error) {
	filter := bson.M{}
	if opts != nil {
		if opts.InstructorID != "" {
			filter["instructor_ids"] = opts.InstructorID
		}
		c := opts.Categories
		if c.AgeRange != "" {
			filter["categories.age_range"] = c.AgeRange
		}
		if c.ClassType != "" {
			filter["categories.class_type"] = c.ClassType
		}
		if c.TechType != "" {
			filter["categories.tech_type"] = c.TechType
		}
		if c.Subject != "" {
			filter["categories.subject"] = c.Subject
		}
		if opts.From != nil {
			filter["end_date"] = bson.M{"$gte": *opts.From}
		}
		if opts.To != nil {
			filter["start_date"] = bson.M{"$lte": *opts.To}
		}
	}
	return r.find(ctx, filter)
}

func (r *WorkshopRepository) UpdateWorkshop(ctx context.Context, id string, updates map[string]interface{}) error {
	set := bson.M{"updated_at": time.Now()}
	for k, v := range updates {
		set[k] = v
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return notFoundWorkshop()
	}
	return nil
}

// IncrementRegisteredCount only matches an open workshop while registered_count < capacity.
func (r *WorkshopRepository) IncrementRegisteredCount(ctx context.Context, id string) (bool, error) {
	filter := bson.M{
		"_id":      id,
		"canceled": false,
		"$expr":    bson.M{"$lt": bson.A{"$registered_count", "$capacity"}},
	}
	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"registered_count": 1}})
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}

func (r *WorkshopRepository) DecrementRegisteredCount(ctx context.Context, id string) error {
	filter := bson.M{"_id": id, "registered_count": bson.M{"$gt": 0}}
	_, err := r.collection.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"registered_count": -1}})
	return err
}

func (r *WorkshopRepository) RemoveInstructorFromAll(ctx context.Context, instructorID string) (int64, error) {
	filter := bson.M{"instructor_ids": instructorID}
	update := bson.M{"$pull": bson.M{"instructor_ids": instructorID}, "$set": bson.M{"updated_at": time.Now()}}
	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (r *WorkshopRepository) MarkCanceled(ctx context.Context, id string) (bool, error) {
	filter := bson.M{"_id": id, "canceled": false}
	update := bson.M{"$set": bson.M{"canceled": true, "registered_count": 0, "updated_at": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}

func (r *WorkshopRepository) MarkUncanceled(ctx context.Context, id string, start, end time.Time) (bool, error) {
	filter := bson.M{"_id": id, "canceled": true}
	update := bson.M{"$set": bson.M{
		"canceled":      false,
		"reminder_sent": false,
		"start_date":    start,
		"end_date":      end,
		"updated_at":    time.Now(),
	}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}

func (r *WorkshopRepository) MarkReminderSent(ctx context.Context, id string) (bool, error) {
	filter := bson.M{"_id": id, "reminder_sent": false}
	update := bson.M{"$set": bson.M{"reminder_sent": true, "updated_at": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}
