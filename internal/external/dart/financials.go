package dart

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/wonny/buffett/backend/internal/contracts"
)

// ErrNoFinancials marks a stock with no usable DART financial statements.
// 호출측은 이 에러를 받으면 mock 재무 데이터로 강등한다.
var ErrNoFinancials = errors.New("dart: no financial statement data")

// financialResponse represents the fnlttSinglAcnt API response
type financialResponse struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	List    []financialRow `json:"list"`
}

// financialRow is one account line of a financial statement
type financialRow struct {
	AccountNm    string `json:"account_nm"`     // 계정명
	ThstrmAmount string `json:"thstrm_amount"`  // 당기 금액
	FrmtrmAmount string `json:"frmtrm_amount"`  // 전기 금액
	FsDiv        string `json:"fs_div"`         // OFS: 재무제표, CFS: 연결재무제표
}

// FetchFinancials fetches key financial statement accounts for one company.
// ⭐ SSOT: DART 재무제표 조회는 이 함수에서만
// 연결재무제표(CFS) 우선, 없으면 개별(OFS).
// FCF/3개년 ROE 등 파생 지표는 공시 원데이터에 없으므로 여기서 채우지 않는다.
func (c *Client) FetchFinancials(ctx context.Context, corpCode, year string) (*contracts.FinancialRecord, error) {
	var resp financialResponse
	err := c.getJSON(ctx, "/api/fnlttSinglAcnt.json", url.Values{
		"corp_code":  {corpCode},
		"bsns_year":  {year},
		"reprt_code": {"11011"}, // 사업보고서
	}, &resp)
	if err != nil {
		return nil, err
	}

	// status "013": 조회된 데이터 없음
	if resp.Status != "000" {
		c.logger.WithFields(map[string]interface{}{
			"corp_code": corpCode,
			"status":    resp.Status,
			"message":   resp.Message,
		}).Warn("DART returned no financial data")
		return nil, ErrNoFinancials
	}

	record := &contracts.FinancialRecord{}
	var equity, prevEquity float64

	pick := func(row financialRow) {
		amount := contracts.ToFloat(row.ThstrmAmount, 0)
		switch strings.TrimSpace(row.AccountNm) {
		case "매출액":
			record.Revenue = amount
		case "당기순이익":
			record.NetIncome = amount
		case "자본총계":
			equity = amount
			prevEquity = contracts.ToFloat(row.FrmtrmAmount, 0)
		}
	}

	// 연결 우선
	for _, row := range resp.List {
		if row.FsDiv == "CFS" {
			pick(row)
		}
	}
	if record.Revenue == 0 && record.NetIncome == 0 {
		for _, row := range resp.List {
			if row.FsDiv == "OFS" {
				pick(row)
			}
		}
	}

	if record.Revenue == 0 || equity == 0 {
		return nil, fmt.Errorf("%w: essential accounts missing for %s", ErrNoFinancials, corpCode)
	}

	record.ROE3YAvg = record.NetIncome / equity * 100
	record.NetProfitMargin = record.NetIncome / record.Revenue * 100
	if prevEquity > 0 {
		record.EquityGrowth3Y = (equity/prevEquity - 1) * 100
	}

	c.logger.WithFields(map[string]interface{}{
		"corp_code": corpCode,
		"year":      year,
	}).Debug("Fetched financials from DART")

	return record, nil
}
