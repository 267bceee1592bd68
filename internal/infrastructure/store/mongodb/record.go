package mongodb

import (
	"context"
	"errors"
	"log/slog"

	"learnassist/internal/domain/entity"
	"learnassist/internal/domain/repository"
	"learnassist/internal/infrastructure/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const backend = "mongo"

type MongoRecordRepo struct {
	col *mongo.Collection
}

func NewMongoRecordRepo(db *mongo.Database) repository.RecordRepository {
	col := db.Collection("generations")

	_, _ = col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{bson.E{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{bson.E{Key: "created_at", Value: -1}}},
		{Keys: bson.D{bson.E{Key: "endpoint", Value: 1}}},
	})

	return &MongoRecordRepo{
		col: col,
	}
}

func (r *MongoRecordRepo) Create(ctx context.Context, rec *entity.GenerationRecord) error {
	metrics.IncJournalOp(backend, "put")

	_, err := r.col.InsertOne(ctx, rec)
	if err != nil {
		metrics.IncError("mongo_record_repo", "create_error")
		return err
	}
	return nil
}

func (r *MongoRecordRepo) GetByID(ctx context.Context, id string) (*entity.GenerationRecord, error) {
	metrics.IncJournalOp(backend, "get")

	var rec entity.GenerationRecord
	err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		metrics.IncError("mongo_record_repo", "get_error")
		return nil, err
	}
	return &rec, nil
}

func (r *MongoRecordRepo) ListRecent(ctx context.Context, limit int) ([]*entity.GenerationRecord, error) {
	metrics.IncJournalOp(backend, "list")

	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		metrics.IncError("mongo_record_repo", "list_error")
		return nil, err
	}
	defer func() {
		if err := cur.Close(ctx); err != nil {
			slog.Warn("close cursor", "err", err)
		}
	}()

	var recs []*entity.GenerationRecord
	for cur.Next(ctx) {
		var rec entity.GenerationRecord
		if err := cur.Decode(&rec); err != nil {
			metrics.IncError("mongo_record_repo", "list_decode_error")
			return nil, err
		}
		recs = append(recs, &rec)
	}
	if err := cur.Err(); err != nil {
		metrics.IncError("mongo_record_repo", "list_cursor_error")
	}
	return recs, cur.Err()
}

func (r *MongoRecordRepo) CountByEndpoint(ctx context.Context, endpoint entity.Endpoint) (int, error) {
	metrics.IncJournalOp(backend, "count")

	count, err := r.col.CountDocuments(ctx, bson.M{"endpoint": endpoint})
	if err != nil {
		metrics.IncError("mongo_record_repo", "count_by_endpoint_error")
		return 0, err
	}
	return int(count), nil
}
