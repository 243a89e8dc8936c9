// Package feed fetches the six TWSE/TPEx regulatory-notice endpoints and
// normalizes their differing field names into three shared record shapes.
// Every fetch follows safeFetch semantics: network failure, non-2xx status,
// or a non-array body degrade to an empty slice so one unreachable source
// never fails the aggregate snapshot.
package feed

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
)

// AttentionNotice is one row of an exchange's daily attention announcement.
type AttentionNotice struct {
	Code        string
	Name        string
	TradingInfo string
	Date        string
}

// AttentionCountNote is one row of the cumulative attention-count list; the
// Situation text carries the "第N次" occurrence phrase.
type AttentionCountNote struct {
	Code      string
	Situation string
}

// DisposalNotice is one row of an exchange's disposal announcement. Period
// is a raw ROC date range; Measures is the free-text matching description.
type DisposalNotice struct {
	Code     string
	Name     string
	Period   string
	Measures string
}

// Default endpoint bases.
const (
	DefaultTWSEBase = "https://openapi.twse.com.tw/v1"
	DefaultTPExBase = "https://www.tpex.org.tw/openapi/v1"
)

// Client fetches the regulatory feeds of both exchanges.
type Client struct {
	httpClient *http.Client
	twseBase   string
	tpexBase   string
}

// NewClient builds a feed client with optional proxy support. Empty base
// URLs fall back to the public openapi hosts.
func NewClient(twseBase, tpexBase, proxyURL string) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if twseBase == "" {
		twseBase = DefaultTWSEBase
	}
	if tpexBase == "" {
		tpexBase = DefaultTPExBase
	}
	return &Client{
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		twseBase: twseBase,
		tpexBase: tpexBase,
	}
}

// safeFetchArray GETs a JSON array and returns its elements. All failure
// modes log a warning and return nil.
func (c *Client) safeFetchArray(ctx context.Context, rawURL string) []gjson.Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		log.Printf("[WARN] feed: build request %s: %v", rawURL, err)
		return nil
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "PairSentinel/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[WARN] feed: fetch %s: %v", rawURL, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[WARN] feed: %s returned status %d", rawURL, resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[WARN] feed: read %s: %v", rawURL, err)
		return nil
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		log.Printf("[WARN] feed: %s returned a non-array body", rawURL)
		return nil
	}
	return parsed.Array()
}

// TWSEAttentionNotices fetches the daily attention list (announcement/notice).
func (c *Client) TWSEAttentionNotices(ctx context.Context) []AttentionNotice {
	items := c.safeFetchArray(ctx, c.twseBase+"/announcement/notice")
	out := make([]AttentionNotice, 0, len(items))
	for _, item := range items {
		out = append(out, AttentionNotice{
			Code:        item.Get("Code").String(),
			Name:        item.Get("Name").String(),
			TradingInfo: item.Get("TradingInfoForAttention").String(),
			Date:        item.Get("Date").String(),
		})
	}
	return out
}

// TWSEAttentionCounts fetches the cumulative attention-count list
// (announcement/notetrans).
func (c *Client) TWSEAttentionCounts(ctx context.Context) []AttentionCountNote {
	items := c.safeFetchArray(ctx, c.twseBase+"/announcement/notetrans")
	out := make([]AttentionCountNote, 0, len(items))
	for _, item := range items {
		out = append(out, AttentionCountNote{
			Code:      item.Get("Code").String(),
			Situation: item.Get("RecentlyMetAttentionSecuritiesCriteria").String(),
		})
	}
	return out
}

// TWSEDisposalNotices fetches the disposal list (announcement/punish). The
// matching interval lives in the Detail field on this exchange.
func (c *Client) TWSEDisposalNotices(ctx context.Context) []DisposalNotice {
	items := c.safeFetchArray(ctx, c.twseBase+"/announcement/punish")
	out := make([]DisposalNotice, 0, len(items))
	for _, item := range items {
		out = append(out, DisposalNotice{
			Code:     item.Get("Code").String(),
			Name:     item.Get("Name").String(),
			Period:   item.Get("DispositionPeriod").String(),
			Measures: item.Get("Detail").String(),
		})
	}
	return out
}

// TPExAttentionNotices fetches the daily attention list
// (tpex_trading_warning_information).
func (c *Client) TPExAttentionNotices(ctx context.Context) []AttentionNotice {
	items := c.safeFetchArray(ctx, c.tpexBase+"/tpex_trading_warning_information")
	out := make([]AttentionNotice, 0, len(items))
	for _, item := range items {
		out = append(out, AttentionNotice{
			Code:        item.Get("SecuritiesCompanyCode").String(),
			Name:        item.Get("CompanyName").String(),
			TradingInfo: item.Get("TradingInformation").String(),
			Date:        item.Get("Date").String(),
		})
	}
	return out
}

// TPExAttentionCounts fetches the cumulative attention-count list
// (tpex_trading_warning_note).
func (c *Client) TPExAttentionCounts(ctx context.Context) []AttentionCountNote {
	items := c.safeFetchArray(ctx, c.tpexBase+"/tpex_trading_warning_note")
	out := make([]AttentionCountNote, 0, len(items))
	for _, item := range items {
		out = append(out, AttentionCountNote{
			Code:      item.Get("SecuritiesCompanyCode").String(),
			Situation: item.Get("AccumulationSituation").String(),
		})
	}
	return out
}

// TPExDisposalNotices fetches the disposal list (tpex_disposal_information).
// The matching interval lives in the DisposalCondition field here.
func (c *Client) TPExDisposalNotices(ctx context.Context) []DisposalNotice {
	items := c.safeFetchArray(ctx, c.tpexBase+"/tpex_disposal_information")
	out := make([]DisposalNotice, 0, len(items))
	for _, item := range items {
		out = append(out, DisposalNotice{
			Code:     item.Get("SecuritiesCompanyCode").String(),
			Name:     item.Get("CompanyName").String(),
			Period:   item.Get("DispositionPeriod").String(),
			Measures: item.Get("DisposalCondition").String(),
		})
	}
	return out
}

// Name identifies the client in logs.
func (c *Client) Name() string {
	return fmt.Sprintf("twse=%s tpex=%s", c.twseBase, c.tpexBase)
}
