package service

import (
	"Fanscope/internal/model"
	"Fanscope/internal/pkg/kafka"
	"Fanscope/internal/pkg/minio"
	"Fanscope/internal/repository"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// 导出覆盖最近 90 天的快照
const exportHistoryDays = 90

type ExportService interface {
	Export(ctx context.Context, userID uint64, platformName, externalID, format string) (*model.ExportRecord, error)
	ListExports(ctx context.Context, userID uint64) ([]*model.ExportRecord, error)
}

type exportServiceImpl struct {
	metricsRepo repository.CreatorMetricsRepo
	exportRepo  repository.ExportRecordRepo
	producer    kafka.Producer
}

func NewExportService(
	metricsRepo repository.CreatorMetricsRepo,
	exportRepo repository.ExportRecordRepo,
	producer kafka.Producer,
) ExportService {
	return &exportServiceImpl{
		metricsRepo: metricsRepo,
		exportRepo:  exportRepo,
		producer:    producer,
	}
}

func (s *exportServiceImpl) Export(ctx context.Context, userID uint64, platformName, externalID, format string) (*model.ExportRecord, error) {
	if format != model.ExportFormatCSV && format != model.ExportFormatJSON {
		return nil, ErrExportFormatInvalid
	}

	history, err := s.metricsRepo.GetHistory(ctx, platformName, externalID, exportHistoryDays)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, ErrNoSnapshotData
	}

	var buf bytes.Buffer
	var contentType string
	switch format {
	case model.ExportFormatCSV:
		contentType = "text/csv"
		err = renderCSV(&buf, history)
	case model.ExportFormatJSON:
		contentType = "application/json"
		err = renderJSON(&buf, history)
	}
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("%d/%s-%s-%s.%s",
		userID, platformName, externalID, time.Now().Format("20060102150405"), format)

	objectKey, err := minio.UploadFile(ctx, minio.ExportBucket, objectName, &buf, int64(buf.Len()), contentType)
	if err != nil {
		log.ErrorContext(ctx, "Upload export file failed", log.Any("err", err))
		return nil, UnExpectedError
	}

	record := &model.ExportRecord{
		UserID:     userID,
		Platform:   platformName,
		ExternalID: externalID,
		Format:     format,
		ObjectKey:  objectKey,
		FileURL:    minio.GetPublicURL(minio.ExportBucket, objectKey),
		RowCount:   len(history),
	}
	if err := s.exportRepo.CreateRecord(ctx, record); err != nil {
		return nil, err
	}

	// 投递即忘，通知失败不影响导出结果
	_ = s.producer.PublishNotify(ctx, &kafka.NotifyMessage{
		UserID: userID,
		Title:  "导出完成",
		Body:   fmt.Sprintf("%s/%s 的指标已导出 %d 行", platformName, externalID, record.RowCount),
	})

	return record, nil
}

func (s *exportServiceImpl) ListExports(ctx context.Context, userID uint64) ([]*model.ExportRecord, error) {
	return s.exportRepo.ListRecordsByUser(ctx, userID, 20)
}

// renderCSV 互动率现场推导，表头固定
func renderCSV(buf *bytes.Buffer, history []*model.CreatorMetrics) error {
	w := csv.NewWriter(buf)
	if err := w.Write([]string{
		"platform", "external_id", "username",
		"followers", "likes", "comments", "engagement_rate", "earnings", "captured_at",
	}); err != nil {
		return err
	}

	for _, m := range history {
		earnings := ""
		if m.Earnings != nil {
			earnings = strconv.FormatFloat(*m.Earnings, 'f', 2, 64)
		}
		if err := w.Write([]string{
			m.Platform,
			m.ExternalID,
			m.Username,
			strconv.Itoa(m.Followers),
			strconv.Itoa(m.Likes),
			strconv.Itoa(m.Comments),
			strconv.FormatFloat(m.EngagementRate(), 'f', 2, 64),
			earnings,
			m.CapturedAt.Format(time.RFC3339),
		}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

type exportRow struct {
	Platform       string   `json:"platform"`
	ExternalID     string   `json:"external_id"`
	Username       string   `json:"username"`
	Followers      int      `json:"followers"`
	Likes          int      `json:"likes"`
	Comments       int      `json:"comments"`
	EngagementRate float64  `json:"engagement_rate"`
	Earnings       *float64 `json:"earnings,omitempty"`
	CapturedAt     string   `json:"captured_at"`
}

func renderJSON(buf *bytes.Buffer, history []*model.CreatorMetrics) error {
	rows := make([]exportRow, 0, len(history))
	for _, m := range history {
		rows = append(rows, exportRow{
			Platform:       m.Platform,
			ExternalID:     m.ExternalID,
			Username:       m.Username,
			Followers:      m.Followers,
			Likes:          m.Likes,
			Comments:       m.Comments,
			EngagementRate: m.EngagementRate(),
			Earnings:       m.Earnings,
			CapturedAt:     m.CapturedAt.Format(time.RFC3339),
		})
	}

	data, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	_, err = buf.Write(data)
	return err
}
