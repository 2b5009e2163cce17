package contracts

import (
	"strconv"
	"strings"
)

// ToFloat coerces provider values into float64, returning def on any failure.
// 외부 API는 숫자를 "1,234,567"이나 "12.3%" 같은 문자열로 주는 경우가 많아
// 단일 필드 불량으로 스코어러가 실패하지 않도록 방어적으로 변환한다.
func ToFloat(v interface{}, def float64) float64 {
	switch val := v.(type) {
	case nil:
		return def
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case string:
		s := strings.TrimSpace(val)
		if s == "" || s == "-" {
			return def
		}
		s = strings.ReplaceAll(s, ",", "")
		s = strings.TrimSuffix(s, "%")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return def
		}
		return f
	default:
		return def
	}
}
