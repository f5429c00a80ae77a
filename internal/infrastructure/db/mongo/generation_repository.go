package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aicv/cv-service/internal/core/domain"
)

const collectionGenerations = "generations"

// GenerationRepository stores the metadata-only audit trail of successful
// generations. Profile and job content never reach this collection.
type GenerationRepository struct {
	col *mongo.Collection
}

func NewGenerationRepository(db *mongo.Database) *GenerationRepository {
	return &GenerationRepository{col: db.Collection(collectionGenerations)}
}

type generationDoc struct {
	AccountID  string    `bson:"account_id"`
	TargetLang string    `bson:"target_lang"`
	Remaining  int       `bson:"remaining"`
	DurationMs int64     `bson:"duration_ms"`
	CreatedAt  time.Time `bson:"created_at"`
}

func (r *GenerationRepository) Insert(ctx context.Context, record *domain.GenerationRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := generationDoc{
		AccountID:  record.AccountID,
		TargetLang: string(record.TargetLang),
		Remaining:  record.Remaining,
		DurationMs: record.DurationMs,
		CreatedAt:  record.CreatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert generation record: %w", err)
	}
	return nil
}

// ListRecent returns the newest records first, capped at limit.
func (r *GenerationRepository) ListRecent(ctx context.Context, limit int) ([]domain.GenerationRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if limit <= 0 || limit > 500 {
		limit = 100
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list generation records: %w", err)
	}
	defer cur.Close(ctx)

	var docs []generationDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode generation records: %w", err)
	}

	records := make([]domain.GenerationRecord, 0, len(docs))
	for _, d := range docs {
		records = append(records, domain.GenerationRecord{
			AccountID:  d.AccountID,
			TargetLang: domain.Language(d.TargetLang),
			Remaining:  d.Remaining,
			DurationMs: d.DurationMs,
			CreatedAt:  d.CreatedAt,
		})
	}
	return records, nil
}

// EnsureIndexes creates indexes on the generations collection.
func (r *GenerationRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "account_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	return err
}
