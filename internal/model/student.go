package model

// Student 로그인 이후 클라이언트가 보관하는 신원 정보.
// ID 는 노션 페이지 ID 이며 이후 모든 호출의 사실상 인증 토큰이다.
type Student struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
