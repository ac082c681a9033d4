package handlers

// User-facing messages, kept verbatim from the production contract: the
// client program string-matches some of them.
const (
	msgCredentialsRequired   = "이메일(id)과 비밀번호(pw)가 필요합니다."
	msgEmailPasswordRequired = "이메일과 비밀번호가 필요합니다."
	msgTextRequired          = "text 값이 필요합니다."
	msgAPIValueRequired      = "api_value가 필요합니다."
	msgColumnNotAllowed      = "허용된 컬럼이 아닙니다. set_value 또는 set_value_1, set_value_2, set_value_3 형식만 가능합니다."
	msgServerError           = "서버 오류가 발생했습니다."
	msgUserInfoFetchFailed   = "사용자 정보 조회 중 오류가 발생했습니다."
	msgTokenUpdateFailed     = "토큰 갱신 중 오류가 발생했습니다."
	msgAPIValueSaved         = "api_value와 api_at이 반영되었습니다."
	msgAPIValueSaveFailed    = "api_value 저장 중 오류가 발생했습니다."
	msgVersionFetchFailed    = "데이터베이스 조회 중 오류가 발생했습니다."
)

func msgColumnFetchFailed(column string) string {
	return column + " 조회 중 오류가 발생했습니다."
}

func msgColumnSaveFailed(column string) string {
	return column + " 저장 중 오류가 발생했습니다."
}

func msgColumnSaved(column string) string {
	return column + "가 반영되었습니다."
}
