package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// QuotaRepository is the MongoDB-backed quota ledger. Both operations are
// single FindOneAndUpdate calls so the server's per-document atomicity is the
// serialization point; the balance is never read and written in two steps.
type QuotaRepository struct {
	col             *mongo.Collection
	startingCredits int
}

func NewQuotaRepository(db *mongo.Database, startingCredits int) *QuotaRepository {
	return &QuotaRepository{col: db.Collection(collectionAccounts), startingCredits: startingCredits}
}

type ledgerDoc struct {
	CvCredits int `bson:"cv_credits"`
}

// EnsureInitialized sets the starting allotment when the account document or
// its cv_credits field does not exist yet, and returns the stored balance.
// The $ifNull pipeline leaves any existing balance untouched, including zero.
func (r *QuotaRepository) EnsureInitialized(ctx context.Context, accountID string) (int, error) {
	oid, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return 0, fmt.Errorf("quota init: invalid account id: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"cv_credits": bson.M{"$ifNull": bson.A{"$cv_credits", r.startingCredits}},
			"created_at": bson.M{"$ifNull": bson.A{"$created_at", time.Now().UTC()}},
		}}},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc ledgerDoc
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, pipeline, opts).Decode(&doc); err != nil {
		return 0, fmt.Errorf("quota init: %w", err)
	}
	return doc.CvCredits, nil
}

// TryConsumeOne decrements the balance by one only when it is positive and
// returns the post-decrement value. The positive-balance check and the
// decrement are the same document update, so concurrent callers observe a
// strictly decreasing, gap-free sequence and none succeeds past zero.
func (r *QuotaRepository) TryConsumeOne(ctx context.Context, accountID string) (int, bool, error) {
	oid, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return 0, false, fmt.Errorf("quota consume: invalid account id: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "cv_credits": bson.M{"$gt": 0}}
	update := bson.M{
		"$inc": bson.M{"cv_credits": -1},
		"$set": bson.M{"last_cv_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc ledgerDoc
	err = r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// No document matched the positive-balance filter: exhausted.
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("quota consume: %w", err)
	}
	return doc.CvCredits, true, nil
}
