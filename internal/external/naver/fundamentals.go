package naver

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/buffett/backend/internal/contracts"
)

// Fundamentals holds the valuation fields scraped from a stock's main page.
type Fundamentals struct {
	Symbol        string
	Sector        string
	PER           float64
	PBR           float64
	DividendYield float64
}

// FetchFundamentals scrapes PER/PBR/배당수익률/업종 from Naver Finance.
// ⭐ SSOT: Naver Finance 밸류에이션 스크래핑은 이 함수에서만
// KRX 응답에 없는 필드의 보강 전용이다.
func (c *Client) FetchFundamentals(ctx context.Context, symbol string) (*Fundamentals, error) {
	html, err := c.fetchHTML(ctx, "/item/main.naver", url.Values{"code": {symbol}})
	if err != nil {
		return nil, fmt.Errorf("fetch stock page: %w", err)
	}

	fundamentals, err := parseFundamentals(html, symbol)
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"per":    fundamentals.PER,
		"pbr":    fundamentals.PBR,
	}).Debug("Fetched fundamentals from Naver")

	return fundamentals, nil
}

// parseFundamentals extracts valuation fields from the stock main page HTML.
func parseFundamentals(html, symbol string) (*Fundamentals, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	fundamentals := &Fundamentals{Symbol: symbol}

	// 업종: 상단 breadcrumb 링크
	doc.Find("div.trade_compare a, .h_sub .description a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if strings.Contains(href, "upjong") {
			fundamentals.Sector = strings.TrimSpace(s.Text())
			return false
		}
		return true
	})

	// 투자정보 테이블: th 라벨 기준으로 값 추출
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		label := strings.TrimSpace(row.Find("th").First().Text())
		value := strings.TrimSpace(row.Find("td em").First().Text())
		if value == "" {
			value = strings.TrimSpace(row.Find("td").First().Text())
		}

		switch {
		case strings.HasPrefix(label, "PER"):
			fundamentals.PER = contracts.ToFloat(value, 0)
		case strings.HasPrefix(label, "PBR"):
			fundamentals.PBR = contracts.ToFloat(value, 0)
		case strings.Contains(label, "배당수익률"):
			fundamentals.DividendYield = contracts.ToFloat(value, 0)
		}
	})

	if fundamentals.PER == 0 && fundamentals.PBR == 0 {
		return nil, fmt.Errorf("no valuation data found for %s", symbol)
	}

	return fundamentals, nil
}
