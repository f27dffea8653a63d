package repository

import (
	"context"

	"astro_class_backend/internal/model"
	"astro_class_backend/pkg/notion"
)

// 학생 데이터베이스의 고정된 속성 이름
const (
	PropName     = "이름"
	PropPassword = "비밀번호"
)

// StudentRepository 노션 데이터베이스를 학생 레코드 저장소로 감싼 계층
type StudentRepository struct {
	Client     *notion.Client
	DatabaseID string
}

func NewStudentRepository(client *notion.Client, databaseID string) *StudentRepository {
	return &StudentRepository{Client: client, DatabaseID: databaseID}
}

// FindByName 이름 exact-match 질의. 없으면 (nil, nil)
func (r *StudentRepository) FindByName(ctx context.Context, name string) (*notion.Page, error) {
	pages, err := r.Client.QueryDatabase(ctx, r.DatabaseID, notion.RichTextEquals(PropName, name))
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, nil
	}
	return &pages[0], nil
}

func (r *StudentRepository) Retrieve(ctx context.Context, pageID string) (*notion.Page, error) {
	return r.Client.RetrievePage(ctx, pageID)
}

// UpdatePassword 비밀번호 속성을 무조건 덮어쓴다. 비어 있는지 확인하지 않는다 (last write wins).
func (r *StudentRepository) UpdatePassword(ctx context.Context, pageID, password string) error {
	_, err := r.Client.UpdatePage(ctx, pageID, map[string]interface{}{
		PropPassword: notion.RichTextProperty(password),
	})
	return err
}

// AttachUploadedFile 지정한 속성의 파일 목록을 스테이징된 업로드 파일 하나로 교체한다.
// 속성 이름이 실제 과제 속성인지는 검증하지 않는다.
func (r *StudentRepository) AttachUploadedFile(ctx context.Context, pageID, fieldName, fileUploadID, fileName string) error {
	_, err := r.Client.UpdatePage(ctx, pageID, map[string]interface{}{
		fieldName: notion.UploadedFilesProperty(fileName, fileUploadID),
	})
	return err
}

// AttachExternalFile 외부 스토리지(MinIO 등)에 올라간 파일을 URL 로 연결한다.
func (r *StudentRepository) AttachExternalFile(ctx context.Context, pageID, fieldName, url, fileName string) error {
	_, err := r.Client.UpdatePage(ctx, pageID, map[string]interface{}{
		fieldName: notion.ExternalFilesProperty(fileName, url),
	})
	return err
}

// StudentOf 페이지에서 클라이언트에 보내도 되는 신원 정보만 추린다.
func StudentOf(page *notion.Page) *model.Student {
	if page == nil {
		return nil
	}
	return &model.Student{
		ID:   page.ID,
		Name: page.Properties[PropName].PlainText(),
	}
}

// StoredPassword 저장된 비밀번호 평문. 속성이 없거나 비어 있으면 "".
func StoredPassword(page *notion.Page) string {
	return page.Properties[PropPassword].PlainText()
}
