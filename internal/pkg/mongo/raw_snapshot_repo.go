package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RawSnapshotRepo interface {
	SaveSnapshot(ctx context.Context, snap *RawSnapshot) error
	GetRecent(ctx context.Context, platform, externalID string, limit int) ([]*RawSnapshot, error)
}

type rawSnapshotRepoImpl struct {
	col *mongo.Collection
}

func NewRawSnapshotRepo(db *mongo.Database) RawSnapshotRepo {
	return &rawSnapshotRepoImpl{
		col: db.Collection("raw_snapshots"),
	}
}

// SaveSnapshot 直接归档，不做去重，审计用
func (s *rawSnapshotRepoImpl) SaveSnapshot(ctx context.Context, snap *RawSnapshot) error {
	if snap.ArchivedAt.IsZero() {
		snap.ArchivedAt = time.Now()
	}
	_, err := s.col.InsertOne(ctx, snap)
	return err
}

// GetRecent 按采集时间倒序拉取最近 N 条
func (s *rawSnapshotRepoImpl) GetRecent(ctx context.Context, platform, externalID string, limit int) ([]*RawSnapshot, error) {
	if limit <= 0 {
		limit = 20
	}

	filter := bson.M{"platform": platform, "external_id": externalID}

	findOptions := options.Find().
		SetSort(bson.D{
			{Key: "captured_at", Value: -1},
			{Key: "_id", Value: -1},
		}).
		SetLimit(int64(limit))

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	snapshots := make([]*RawSnapshot, 0)
	if err := cursor.All(ctx, &snapshots); err != nil {
		return nil, err
	}

	return snapshots, nil
}
