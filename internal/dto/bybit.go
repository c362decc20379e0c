package dto

// BybitClosedPnl is one closed position as returned by the Bybit v5
// /v5/position/closed-pnl endpoint. Numeric fields arrive as decimal strings
// and timestamps as millisecond epoch strings; nothing here is coerced.
type BybitClosedPnl struct {
	Symbol        string `json:"symbol"`
	Side          string `json:"side"`
	ClosedPnl     string `json:"closedPnl"`
	CreatedTime   string `json:"createdTime"`
	UpdatedTime   string `json:"updatedTime"`
	AvgEntryPrice string `json:"avgEntryPrice"`
	AvgExitPrice  string `json:"avgExitPrice"`
	Qty           string `json:"qty"`
	ClosedSize    string `json:"closedSize"`
	CumEntryValue string `json:"cumEntryValue"`
	CumExitValue  string `json:"cumExitValue"`
	Leverage      string `json:"leverage"`
	OrderID       string `json:"orderId"`
	OrderLinkID   string `json:"orderLinkId"`
}

type BybitClosedPnlResult struct {
	Category       string           `json:"category"`
	List           []BybitClosedPnl `json:"list"`
	NextPageCursor string           `json:"nextPageCursor"`
}

type BybitAPIResponse struct {
	RetCode int                  `json:"retCode"`
	RetMsg  string               `json:"retMsg"`
	Result  BybitClosedPnlResult `json:"result"`
}

const (
	SideBuy  = "Buy"
	SideSell = "Sell"
)
