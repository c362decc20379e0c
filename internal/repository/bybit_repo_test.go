package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"trading-report/config"
	"trading-report/pkg/cache"
	"trading-report/pkg/httpclient"
	"trading-report/pkg/logger"
)

type fakeHTTPClient struct {
	responses []string
	calls     int
	endpoints []string
	headers   []map[string]string
}

func (f *fakeHTTPClient) Get(ctx context.Context, endpoint string, queryParams map[string]string, headers map[string]string, result interface{}) (*httpclient.BaseResponse, error) {
	body := f.responses[f.calls]
	f.calls++
	f.endpoints = append(f.endpoints, endpoint)
	f.headers = append(f.headers, headers)

	if err := json.Unmarshal([]byte(body), result); err != nil {
		return nil, err
	}
	return &httpclient.BaseResponse{StatusCode: http.StatusOK, Body: []byte(body)}, nil
}

func (f *fakeHTTPClient) Post(ctx context.Context, endpoint string, body interface{}, headers map[string]string, result interface{}) (*httpclient.BaseResponse, error) {
	return &httpclient.BaseResponse{StatusCode: http.StatusOK}, nil
}

func pageJSON(cursor string, symbols ...string) string {
	list := make([]map[string]string, 0, len(symbols))
	for _, s := range symbols {
		list = append(list, map[string]string{
			"symbol":      s,
			"side":        "Buy",
			"closedPnl":   "1.5",
			"createdTime": "1704151800000",
			"updatedTime": "1704155400000",
		})
	}
	payload := map[string]interface{}{
		"retCode": 0,
		"retMsg":  "OK",
		"result": map[string]interface{}{
			"list":           list,
			"nextPageCursor": cursor,
		},
	}
	data, _ := json.Marshal(payload)
	return string(data)
}

func newTestBybitRepository(t *testing.T, client httpclient.HTTPClient) (*bybitRepository, cache.Cache) {
	t.Helper()
	cfg := &config.Config{
		Bybit: config.Bybit{
			APIKey:              "test-key",
			APISecret:           "test-secret",
			Category:            "linear",
			RecvWindow:          5000,
			PageLimit:           100,
			MaxRequestPerMinute: 600,
			CacheExpiration:     time.Minute,
		},
	}
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	inmemoryCache := cache.NewCache(time.Minute, time.Minute)
	inmemoryCache.Flush()

	return &bybitRepository{
		httpClient:     client,
		cfg:            cfg,
		logger:         log,
		cache:          inmemoryCache,
		requestLimiter: rate.NewLimiter(rate.Inf, 1),
	}, inmemoryCache
}

func TestBybitRepository_GetClosedPnl_Paginates(t *testing.T) {
	client := &fakeHTTPClient{
		responses: []string{
			pageJSON("cursor-2", "BTCUSDT", "ETHUSDT"),
			pageJSON("", "SOLUSDT"),
		},
	}
	repo, _ := newTestBybitRepository(t, client)

	start := time.UnixMilli(1704067200000)
	end := time.UnixMilli(1704671999000)

	records, err := repo.GetClosedPnl(context.Background(), start, end)
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, "BTCUSDT", records[0].Symbol)
	assert.Equal(t, "SOLUSDT", records[2].Symbol)
	assert.Equal(t, 2, client.calls)

	// Second page carries the cursor, first page does not.
	assert.NotContains(t, client.endpoints[0], "cursor=")
	assert.Contains(t, client.endpoints[1], "cursor=cursor-2")
}

func TestBybitRepository_GetClosedPnl_QueryAndHeaders(t *testing.T) {
	client := &fakeHTTPClient{responses: []string{pageJSON("", "BTCUSDT")}}
	repo, _ := newTestBybitRepository(t, client)

	start := time.UnixMilli(1704067200000)
	end := time.UnixMilli(1704671999000)

	_, err := repo.GetClosedPnl(context.Background(), start, end)
	require.NoError(t, err)

	require.Len(t, client.endpoints, 1)
	endpoint := client.endpoints[0]
	assert.True(t, strings.HasPrefix(endpoint, "/v5/position/closed-pnl?"))

	query, err := url.ParseQuery(strings.TrimPrefix(endpoint, "/v5/position/closed-pnl?"))
	require.NoError(t, err)
	assert.Equal(t, "linear", query.Get("category"))
	assert.Equal(t, "1704067200000", query.Get("startTime"))
	assert.Equal(t, "1704671999000", query.Get("endTime"))
	assert.Equal(t, "100", query.Get("limit"))

	headers := client.headers[0]
	assert.Equal(t, "test-key", headers["X-BAPI-API-KEY"])
	assert.Equal(t, "5000", headers["X-BAPI-RECV-WINDOW"])
	assert.NotEmpty(t, headers["X-BAPI-TIMESTAMP"])
	assert.Len(t, headers["X-BAPI-SIGN"], 64)
}

func TestBybitRepository_GetClosedPnl_CachesWindow(t *testing.T) {
	client := &fakeHTTPClient{responses: []string{pageJSON("", "BTCUSDT")}}
	repo, _ := newTestBybitRepository(t, client)

	start := time.UnixMilli(1704067200000)
	end := time.UnixMilli(1704671999000)

	first, err := repo.GetClosedPnl(context.Background(), start, end)
	require.NoError(t, err)
	second, err := repo.GetClosedPnl(context.Background(), start, end)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.calls)
}

func TestBybitRepository_GetClosedPnl_APIError(t *testing.T) {
	client := &fakeHTTPClient{
		responses: []string{`{"retCode": 10003, "retMsg": "API key is invalid.", "result": {}}`},
	}
	repo, _ := newTestBybitRepository(t, client)

	_, err := repo.GetClosedPnl(context.Background(), time.UnixMilli(0), time.UnixMilli(1000))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "10003")
	assert.Contains(t, err.Error(), "API key is invalid.")
}
