package seed

import "hash/fnv"

// ForSymbol derives a deterministic RNG seed from a ticker symbol.
// ⭐ SSOT: mock 데이터 생성 시드는 여기서만 — 같은 종목이면 프로세스와
// 런타임에 무관하게 같은 mock 프로파일이 나와야 한다 (FNV-1a).
func ForSymbol(symbol string) int64 {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	return int64(h.Sum64() % 1000)
}
