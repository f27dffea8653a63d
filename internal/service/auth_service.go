package service

import (
	"context"

	"astro_class_backend/internal/model"
	"astro_class_backend/internal/repository"
	"astro_class_backend/internal/util"
)

// AuthService 이름 조회 → 비밀번호 설정/확인으로 이어지는 최초 접속 플로우.
// 세션이나 토큰 계층은 없다. 조회로 얻은 페이지 ID 가 이후 호출의 신원 증명 역할을 한다.
type AuthService struct {
	StudentRepo *repository.StudentRepository
}

func NewAuthService(studentRepo *repository.StudentRepository) *AuthService {
	return &AuthService{StudentRepo: studentRepo}
}

// LookupResult 이름 조회 결과. 비밀번호가 비어 있으면 클라이언트는 설정 화면으로 간다.
type LookupResult struct {
	Exists      bool   `json:"exists"`
	HasPassword bool   `json:"hasPassword"`
	PageID      string `json:"pageId"`
}

// Lookup 수강자 명단에서 이름으로 학생을 찾는다.
func (s *AuthService) Lookup(ctx context.Context, name string) (*LookupResult, error) {
	page, err := s.StudentRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, util.ErrStudentNotFound
	}

	return &LookupResult{
		Exists:      true,
		HasPassword: repository.StoredPassword(page) != "",
		PageID:      page.ID,
	}, nil
}

// Login 저장된 비밀번호와의 문자열 일치를 요구한다. 평문 비교이며 잠금이나 시도 제한은 없다.
// 비밀번호가 아직 설정되지 않은 레코드는 어떤 입력으로도 로그인할 수 없다.
func (s *AuthService) Login(ctx context.Context, name, password string) (*model.Student, error) {
	page, err := s.StudentRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, util.ErrStudentNotFound
	}

	stored := repository.StoredPassword(page)
	if stored == "" {
		return nil, util.ErrPasswordNotSet
	}
	if stored != password {
		return nil, util.ErrPasswordMismatch
	}

	return repository.StudentOf(page), nil
}

// SetPassword 비밀번호를 덮어쓰고, 갱신된 페이지를 다시 읽어 신원 정보를 돌려준다.
// 기존 값이 비어 있는지 확인하지 않는다. 동시에 들어온 설정 요청은 마지막 쓰기가 남는다.
func (s *AuthService) SetPassword(ctx context.Context, pageID, password string) (*model.Student, error) {
	if err := s.StudentRepo.UpdatePassword(ctx, pageID, password); err != nil {
		return nil, err
	}

	page, err := s.StudentRepo.Retrieve(ctx, pageID)
	if err != nil {
		return nil, err
	}
	return repository.StudentOf(page), nil
}
