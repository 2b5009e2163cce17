package dart

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/wonny/buffett/backend/internal/contracts"
)

// ErrESGUnavailable marks a stock without structured ESG data. OpenDART는
// ESG 점수를 제공하지 않는다 — 공시 목록으로 보고서 유무만 확인 가능.
// 호출측(ESG 분석기)은 이 에러를 받으면 결정적 mock 프로파일로 강등한다.
var ErrESGUnavailable = errors.New("dart: structured ESG scores not available")

// disclosureListResponse represents the disclosure list API response
type disclosureListResponse struct {
	Status string `json:"status"`
	List   []struct {
		ReportNm string `json:"report_nm"`
		RceptDt  string `json:"rcept_dt"`
	} `json:"list"`
}

// ESG checks whether the company filed a sustainability report recently and
// reports structured scores as unavailable either way.
func (c *Client) ESG(ctx context.Context, symbol string) (contracts.ESGRecord, error) {
	hasReport, err := c.hasRecentReport(ctx, symbol, "지속가능경영보고서")
	if err == nil && hasReport {
		c.logger.WithField("symbol", symbol).Debug("sustainability report filed, but no structured scores in OpenDART")
	}
	return contracts.ESGRecord{}, ErrESGUnavailable
}

// Governance checks for corporate governance report filings. 구조화된 이사회
// 독립성 수치는 공시 원문에만 있어 조회 불가.
func (c *Client) Governance(ctx context.Context, symbol string) (contracts.GovernanceRecord, error) {
	return contracts.GovernanceRecord{}, ErrESGUnavailable
}

// hasRecentReport checks the last year of disclosures for a report keyword.
func (c *Client) hasRecentReport(ctx context.Context, symbol, keyword string) (bool, error) {
	var resp disclosureListResponse
	err := c.getJSON(ctx, "/api/list.json", url.Values{
		"stock_code": {symbol},
		"bgn_de":     {time.Now().AddDate(-1, 0, 0).Format("20060102")},
		"end_de":     {time.Now().Format("20060102")},
		"page_count": {"100"},
	}, &resp)
	if err != nil {
		return false, err
	}
	if resp.Status != "000" {
		return false, nil
	}

	for _, item := range resp.List {
		if containsKeyword(item.ReportNm, keyword) {
			return true, nil
		}
	}
	return false, nil
}

func containsKeyword(s, keyword string) bool {
	for i := 0; i+len(keyword) <= len(s); i++ {
		if s[i:i+len(keyword)] == keyword {
			return true
		}
	}
	return false
}
