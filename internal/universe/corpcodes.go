package universe

// DefaultCorpCodes maps KRX symbols to DART corp_code for the large caps
// the screener most often reaches. 전체 매핑은 DART corpCode.xml에서 받아야
// 하지만, 시총 상위 종목만으로도 실데이터 경로 대부분을 커버한다.
// 매핑이 없는 종목은 재무만 mock으로 강등된다.
func DefaultCorpCodes() map[string]string {
	return map[string]string{
		"005930": "00126380", // 삼성전자
		"000660": "00164779", // SK하이닉스
		"035420": "00266961", // NAVER
		"005380": "00164742", // 현대차
		"006400": "00126362", // 삼성SDI
		"207940": "00877059", // 삼성바이오로직스
		"068270": "00421045", // 셀트리온
		"035720": "00258801", // 카카오
		"051910": "00356361", // LG화학
		"012330": "00164788", // 현대모비스
		"066570": "00401731", // LG전자
		"017670": "00159023", // SK텔레콤
	}
}
