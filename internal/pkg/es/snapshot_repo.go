package es

import (
	"context"
	"errors"
	log "log/slog"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/versiontype"
	"github.com/goccy/go-json"
)

const MaxSearchDepth = 400

type SnapshotRepo interface {
	IndexSnapshot(ctx context.Context, snap *SnapshotES, version int64) error
	SearchSnapshots(ctx context.Context, keyword, platform string, from, size int) ([]*SnapshotES, error)
	DeleteSnapshot(ctx context.Context, id string) error
}

type SnapshotRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewSnapshotRepo(client *elasticsearch.TypedClient) SnapshotRepo {
	return &SnapshotRepoImpl{client: client}
}

// IndexSnapshot 带外部版本写入，版本取采集时间戳，旧数据冲突直接跳过
func (s *SnapshotRepoImpl) IndexSnapshot(ctx context.Context, snap *SnapshotES, version int64) error {
	_, err := s.client.Index(SnapshotIndex).
		Id(snap.ID).
		Document(snap).
		Version(strconv.FormatInt(version, 10)).
		VersionType(versiontype.External).
		Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == ConflictCode {
				log.Warn("Version conflict detected, skipping old data",
					"snapshot_id", snap.ID,
					"version", version)
				return nil
			}
		}
		return err
	}

	return nil
}

// SearchSnapshots 按用户名模糊检索，可选平台过滤，采集时间倒序
func (s *SnapshotRepoImpl) SearchSnapshots(ctx context.Context, keyword, platform string, from, size int) ([]*SnapshotES, error) {
	if from >= MaxSearchDepth {
		return []*SnapshotES{}, nil
	}

	boolQuery := &types.BoolQuery{}

	if keyword != "" {
		boolQuery.Must = append(boolQuery.Must, types.Query{
			MultiMatch: &types.MultiMatchQuery{
				Query:  keyword,
				Fields: []string{"username^2", "external_id"},
			},
		})
	}

	if platform != "" {
		boolQuery.Filter = append(boolQuery.Filter, types.Query{
			Term: map[string]types.TermQuery{
				"platform": {Value: platform},
			},
		})
	}

	req := s.client.Search().
		Index(SnapshotIndex).
		Query(&types.Query{Bool: boolQuery}).
		Sort(types.SortOptions{SortOptions: map[string]types.FieldSort{
			"captured_at": {Order: &sortorder.Desc},
		}}).
		From(from).
		Size(size)

	res, err := req.Do(ctx)
	if err != nil {
		return nil, err
	}

	snapshots := make([]*SnapshotES, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var snap SnapshotES
		if err := json.Unmarshal(hit.Source_, &snap); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, &snap)
	}
	return snapshots, nil
}

func (s *SnapshotRepoImpl) DeleteSnapshot(ctx context.Context, id string) error {
	_, err := s.client.Delete(SnapshotIndex, id).Do(ctx)
	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == NotFoundCode {
				log.Warn("Snapshot already deleted or not found in ES", "id", id)
				return nil
			}
		}
		return err
	}
	return nil
}
