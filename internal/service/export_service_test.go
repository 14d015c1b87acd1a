package service

import (
	"Fanscope/internal/model"
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHistory() []*model.CreatorMetrics {
	earnings := 1234.5
	return []*model.CreatorMetrics{
		{
			Platform:   "onlyfans",
			ExternalID: "creator-1",
			Username:   "alice",
			Followers:  1000,
			Likes:      150,
			Comments:   50,
			Earnings:   &earnings,
			CapturedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			Platform:   "onlyfans",
			ExternalID: "creator-1",
			Username:   "alice",
			Followers:  0,
			Likes:      10,
			Comments:   2,
			CapturedAt: time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC),
		},
	}
}

func TestRenderCSV(t *testing.T) {
	var buf bytes.Buffer
	err := renderCSV(&buf, sampleHistory())
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "engagement_rate", records[0][6])

	// 互动率现场推导: (150+50)/1000*100 = 20.00
	assert.Equal(t, "20.00", records[1][6])
	assert.Equal(t, "1234.50", records[1][7])
	assert.Equal(t, "2026-08-01T12:00:00Z", records[1][8])

	// 粉丝数为 0 时互动率归零, 无收益时留空
	assert.Equal(t, "0.00", records[2][6])
	assert.Equal(t, "", records[2][7])
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	err := renderJSON(&buf, sampleHistory())
	require.NoError(t, err)

	var rows []exportRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)

	assert.Equal(t, "onlyfans", rows[0].Platform)
	assert.InDelta(t, 20.0, rows[0].EngagementRate, 1e-9)
	require.NotNil(t, rows[0].Earnings)
	assert.InDelta(t, 1234.5, *rows[0].Earnings, 1e-9)

	assert.Nil(t, rows[1].Earnings)
	assert.Zero(t, rows[1].EngagementRate)
}

func TestExportInvalidFormat(t *testing.T) {
	// 格式校验在任何依赖之前, 非法格式不会触碰仓储
	svc := &exportServiceImpl{}
	_, err := svc.Export(context.Background(), 1, "onlyfans", "creator-1", "xml")
	assert.ErrorIs(t, err, ErrExportFormatInvalid)
}
