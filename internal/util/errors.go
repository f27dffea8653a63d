package util

import "errors"

// 사용자에게 보이는 메시지 (원문 그대로)
const (
	MsgNameRequired      = "이름을 입력해주세요."
	MsgStudentIDRequired = "학생 ID가 필요합니다."
	MsgMissingFields     = "필요한 정보가 누락되었습니다."
	MsgFileRequired      = "파일이 존재하지 않습니다."
	MsgServerError       = "서버 오류가 발생했습니다."
	MsgDataFetchError    = "데이터를 가져오는 중 오류가 발생했습니다."
	MsgFileAttached      = "파일이 성공적으로 연결되었습니다."
)

var (
	ErrStudentNotFound  = errors.New("수강자 명단에 없습니다.")
	ErrPasswordMismatch = errors.New("비밀번호가 일치하지 않습니다.")
	ErrPasswordNotSet   = errors.New("비밀번호가 설정되어 있지 않습니다.")
	ErrUploadReserve    = errors.New("업로드 공간 생성에 실패했습니다.")
	ErrUploadTransfer   = errors.New("파일을 전송하는 데 실패했습니다.")
)

// IsUploadError 스테이징 두 단계 중 어느 쪽이 실패했든 같은 종류로 취급한다.
func IsUploadError(err error) bool {
	return errors.Is(err, ErrUploadReserve) || errors.Is(err, ErrUploadTransfer)
}
