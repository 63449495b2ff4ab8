package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hitpulse/internal/core/domain"
)

// CampaignRepository implements port.CampaignRepository on a MongoDB
// collection. Documents use the campaign id as _id.
type CampaignRepository struct {
	coll *mongo.Collection
}

// NewCampaignRepository returns a repository backed by coll.
func NewCampaignRepository(coll *mongo.Collection) *CampaignRepository {
	return &CampaignRepository{coll: coll}
}

// EnsureIndexes creates the indexes used by the list queries.
func (r *CampaignRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "is_active", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create campaign indexes: %w", err)
	}
	return nil
}

// GetCampaign returns a campaign by id.
func (r *CampaignRepository) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	var c domain.Campaign
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCampaignsByUser returns the campaigns of a user, newest first.
func (r *CampaignRepository) ListCampaignsByUser(ctx context.Context, userID string) ([]domain.Campaign, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	return r.find(ctx, bson.M{"user_id": userID}, opts)
}

// ListActiveCampaigns returns every campaign flagged active.
func (r *CampaignRepository) ListActiveCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	return r.find(ctx, bson.M{"is_active": true}, options.Find())
}

// CreateCampaign inserts a new document.
func (r *CampaignRepository) CreateCampaign(ctx context.Context, c *domain.Campaign) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, c)
	return err
}

// UpdateCampaign applies the patch with $set and returns the updated
// document. current_hits is capped at target_hits inside the same update.
func (r *CampaignRepository) UpdateCampaign(ctx context.Context, id string, patch domain.CampaignPatch) (*domain.Campaign, error) {
	if patch.Empty() {
		return r.GetCampaign(ctx, id)
	}

	pipeline := updatePipeline(patch)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c domain.Campaign
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, pipeline, opts).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// updatePipeline builds the update stages for patch. Values are wrapped in
// $literal so strings starting with "$" are not read as field paths.
func updatePipeline(patch domain.CampaignPatch) mongo.Pipeline {
	set := bson.D{}
	add := func(key string, v any) {
		set = append(set, bson.E{Key: key, Value: bson.D{{Key: "$literal", Value: v}}})
	}
	if patch.Website != nil {
		add("website", *patch.Website)
	}
	if patch.TargetHits != nil {
		add("target_hits", *patch.TargetHits)
	}
	if patch.Duration != nil {
		add("duration", *patch.Duration)
	}
	if patch.HitType != nil {
		add("hit_type", string(*patch.HitType))
	}
	if patch.IsActive != nil {
		add("is_active", *patch.IsActive)
	}
	if patch.StartTime != nil {
		add("start_time", *patch.StartTime)
	}

	pipeline := mongo.Pipeline{}
	if len(set) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$set", Value: set}})
	}
	if patch.CurrentHits != nil {
		pipeline = append(pipeline, bson.D{{Key: "$set", Value: bson.D{{
			Key:   "current_hits",
			Value: bson.D{{Key: "$min", Value: bson.A{*patch.CurrentHits, "$target_hits"}}},
		}}}})
	}
	return pipeline
}

// DeleteCampaign removes a document.
func (r *CampaignRepository) DeleteCampaign(ctx context.Context, id string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *CampaignRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Campaign, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	out := []domain.Campaign{}
	if err = cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
