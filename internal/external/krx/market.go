package krx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wonny/buffett/backend/internal/contracts"
)

// krxMarketCapResponse represents the KRX market cap JSON response
type krxMarketCapResponse struct {
	OutBlock1 []krxMarketCapRow `json:"OutBlock_1"`
}

// krxMarketCapRow is one row of the MDCSTAT01501 result
type krxMarketCapRow struct {
	ISU_SRT_CD string `json:"ISU_SRT_CD"` // 종목코드 (단축)
	ISU_ABBRV  string `json:"ISU_ABBRV"`  // 종목명
	TDD_CLSPRC string `json:"TDD_CLSPRC"` // 종가
	MKTCAP     string `json:"MKTCAP"`     // 시가총액
	LIST_SHRS  string `json:"LIST_SHRS"`  // 상장주식수
	ACC_TRDVOL string `json:"ACC_TRDVOL"` // 거래량
}

// FetchMarketRecords fetches the market snapshot for every listed stock in the
// given segment.
// ⭐ SSOT: KRX 시가총액/상장주식수 조회는 이 함수에서만
// PER/PBR/섹터는 KRX 응답에 없다 — Naver/DART에서 보강한다.
func (c *Client) FetchMarketRecords(ctx context.Context, segment string) ([]contracts.MarketRecord, error) {
	krxURL := c.baseURL + "/comm/bldAttendant/getJsonData.cmd"

	var mktID string
	switch strings.ToUpper(segment) {
	case "KOSPI":
		mktID = "STK"
	case "KOSDAQ":
		mktID = "KSQ"
	default:
		return nil, fmt.Errorf("unsupported market segment: %s", segment)
	}

	// 장 마감 전이면 전일 기준, 주말은 건너뜀
	tradeDate := time.Now()
	if tradeDate.Hour() < 16 {
		tradeDate = tradeDate.AddDate(0, 0, -1)
	}
	for tradeDate.Weekday() == time.Saturday || tradeDate.Weekday() == time.Sunday {
		tradeDate = tradeDate.AddDate(0, 0, -1)
	}
	trdDd := tradeDate.Format("20060102")

	formData := url.Values{
		"bld":         {"dbms/MDC/STAT/standard/MDCSTAT01501"},
		"locale":      {"ko_KR"},
		"mktId":       {mktID},
		"trdDd":       {trdDd},
		"share":       {"1"},
		"money":       {"1"},
		"csvxls_isNo": {"false"},
	}

	c.logger.WithFields(map[string]interface{}{
		"segment":    segment,
		"trade_date": trdDd,
	}).Info("Fetching market records from KRX")

	// KRX blocks bot requests — browser-like headers required, so we build
	// the request directly instead of going through the shared wrapper
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, krxURL, strings.NewReader(formData.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7")
	req.Header.Set("Origin", c.baseURL)
	req.Header.Set("Referer", c.baseURL+"/contents/MDC/MDI/mdiLoader/index.cmd?menuId=MDC0201020101")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("KRX API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		preview := string(body)
		if len(preview) > 200 {
			preview = preview[:200]
		}
		return nil, fmt.Errorf("KRX API returned status %d: %s", resp.StatusCode, preview)
	}

	var apiResp krxMarketCapResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("decode KRX response: %w", err)
	}

	if len(apiResp.OutBlock1) == 0 {
		c.logger.Warn("KRX API returned empty data")
		return nil, nil
	}

	records := make([]contracts.MarketRecord, 0, len(apiResp.OutBlock1))
	for _, row := range apiResp.OutBlock1 {
		shares := contracts.ToFloat(row.LIST_SHRS, 0)
		if row.ISU_SRT_CD == "" || shares == 0 {
			continue
		}
		records = append(records, contracts.MarketRecord{
			Symbol:            row.ISU_SRT_CD,
			Name:              row.ISU_ABBRV,
			MarketCap:         contracts.ToFloat(row.MKTCAP, 0),
			CurrentPrice:      contracts.ToFloat(row.TDD_CLSPRC, 0),
			SharesOutstanding: shares,
			Volume:            contracts.ToFloat(row.ACC_TRDVOL, 0),
		})
	}

	c.logger.WithFields(map[string]interface{}{
		"segment": segment,
		"count":   len(records),
	}).Info("Fetched market records from KRX")

	return records, nil
}
