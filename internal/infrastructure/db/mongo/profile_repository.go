package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aicv/cv-service/internal/core/domain"
)

const collectionProfiles = "profiles"

type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection(collectionProfiles)}
}

type profileDoc struct {
	AccountID string         `bson:"account_id"`
	Profile   domain.Profile `bson:"profile"`
}

// GetOrDefault returns the stored profile, or a zero-value profile when the
// account has never saved one.
func (r *ProfileRepository) GetOrDefault(ctx context.Context, accountID string) (domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc profileDoc
	err := r.col.FindOne(ctx, bson.M{"account_id": accountID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Profile{}, nil
		}
		return domain.Profile{}, fmt.Errorf("find profile: %w", err)
	}
	return doc.Profile, nil
}

// Save upserts the full profile document for the account.
func (r *ProfileRepository) Save(ctx context.Context, accountID string, p domain.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"account_id": accountID}
	update := bson.M{"$set": bson.M{"profile": p}}

	_, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique account_id index on the profiles collection.
func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "account_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
