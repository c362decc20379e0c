package repository

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"trading-report/config"
	"trading-report/internal/dto"
	"trading-report/pkg/cache"
	"trading-report/pkg/httpclient"
	"trading-report/pkg/logger"

	"golang.org/x/time/rate"
)

type BybitRepository interface {
	GetClosedPnl(ctx context.Context, start, end time.Time) ([]dto.BybitClosedPnl, error)
}

type bybitRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	cache          cache.Cache
	requestLimiter *rate.Limiter
}

func NewBybitRepository(cfg *config.Config, log *logger.Logger, inmemoryCache cache.Cache) BybitRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.Bybit.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &bybitRepository{
		httpClient:     httpclient.New(cfg.Bybit.BaseURL, cfg.Bybit.Timeout, ""),
		cfg:            cfg,
		logger:         log,
		cache:          inmemoryCache,
		requestLimiter: requestLimiter,
	}
}

// GetClosedPnl pages through /v5/position/closed-pnl for the given window and
// returns the raw records in the order the exchange yields them. Results are
// cached briefly per window so a report rerun does not refetch.
func (r *bybitRepository) GetClosedPnl(ctx context.Context, start, end time.Time) ([]dto.BybitClosedPnl, error) {
	cacheKey := fmt.Sprintf("bybit:closed-pnl:%d:%d", start.UnixMilli(), end.UnixMilli())
	if cached, found := r.cache.Get(cacheKey); found {
		if records, ok := cached.([]dto.BybitClosedPnl); ok {
			return records, nil
		}
	}

	var all []dto.BybitClosedPnl
	cursor := ""

	for {
		page, nextCursor, err := r.getClosedPnlPage(ctx, start, end, cursor)
		if err != nil {
			return nil, err
		}

		all = append(all, page...)

		if nextCursor == "" || len(page) == 0 {
			break
		}
		cursor = nextCursor
	}

	r.logger.InfoContext(ctx, "Fetched closed PnL records from Bybit",
		logger.IntField("count", len(all)),
		logger.StringField("start", start.Format(time.RFC3339)),
		logger.StringField("end", end.Format(time.RFC3339)),
	)

	r.cache.Set(cacheKey, all, r.cfg.Bybit.CacheExpiration)
	return all, nil
}

func (r *bybitRepository) getClosedPnlPage(ctx context.Context, start, end time.Time, cursor string) ([]dto.BybitClosedPnl, string, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, "", err
	}

	params := url.Values{}
	params.Set("category", r.cfg.Bybit.Category)
	params.Set("startTime", strconv.FormatInt(start.UnixMilli(), 10))
	params.Set("endTime", strconv.FormatInt(end.UnixMilli(), 10))
	params.Set("limit", strconv.Itoa(r.cfg.Bybit.PageLimit))
	if cursor != "" {
		params.Set("cursor", cursor)
	}
	query := params.Encode()

	var apiResp dto.BybitAPIResponse
	endpoint := "/v5/position/closed-pnl?" + query
	resp, err := r.httpClient.Get(ctx, endpoint, nil, r.signedHeaders(query), &apiResp)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch closed pnl from bybit: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.Error("Bybit API returned Non-OK status for closed pnl",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return nil, "", fmt.Errorf("bybit api returned status: %d", resp.StatusCode)
	}

	if apiResp.RetCode != 0 {
		return nil, "", fmt.Errorf("bybit api error %d: %s", apiResp.RetCode, apiResp.RetMsg)
	}

	return apiResp.Result.List, apiResp.Result.NextPageCursor, nil
}

// signedHeaders builds the Bybit v5 authentication headers. The signature is
// HMAC-SHA256 over timestamp + apiKey + recvWindow + queryString; the query
// string must be byte-identical to the one sent, which url.Values.Encode
// guarantees by sorting keys.
func (r *bybitRepository) signedHeaders(query string) map[string]string {
	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 10)
	recvWindow := strconv.Itoa(r.cfg.Bybit.RecvWindow)

	mac := hmac.New(sha256.New, []byte(r.cfg.Bybit.APISecret))
	mac.Write([]byte(timestamp + r.cfg.Bybit.APIKey + recvWindow + query))

	return map[string]string{
		"X-BAPI-API-KEY":     r.cfg.Bybit.APIKey,
		"X-BAPI-TIMESTAMP":   timestamp,
		"X-BAPI-RECV-WINDOW": recvWindow,
		"X-BAPI-SIGN":        hex.EncodeToString(mac.Sum(nil)),
	}
}
