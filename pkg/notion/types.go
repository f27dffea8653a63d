package notion

import "time"

// Page 데이터베이스의 한 행. 속성 전체와 마지막 수정 시각을 담는다.
type Page struct {
	ID             string                   `json:"id"`
	LastEditedTime time.Time                `json:"last_edited_time"`
	Properties     map[string]PropertyValue `json:"properties"`
}

// PropertyValue 속성 값의 tagged union. Type 에 따라 해당 필드 하나만 의미가 있다.
// Number 와 Status 는 값이 비어 있을 수 있으므로 포인터로 둔다.
type PropertyValue struct {
	ID       string       `json:"id,omitempty"`
	Type     string       `json:"type"`
	Title    []RichText   `json:"title,omitempty"`
	RichText []RichText   `json:"rich_text,omitempty"`
	Number   *float64     `json:"number,omitempty"`
	Status   *StatusValue `json:"status,omitempty"`
	Files    []File       `json:"files,omitempty"`
}

// PlainText title/rich_text 속성의 첫 세그먼트 평문. 비어 있으면 "".
func (p PropertyValue) PlainText() string {
	if len(p.Title) > 0 {
		return p.Title[0].PlainText
	}
	if len(p.RichText) > 0 {
		return p.RichText[0].PlainText
	}
	return ""
}

type RichText struct {
	Type      string       `json:"type,omitempty"`
	Text      *TextContent `json:"text,omitempty"`
	PlainText string       `json:"plain_text,omitempty"`
}

type TextContent struct {
	Content string `json:"content"`
}

type StatusValue struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type File struct {
	Name       string         `json:"name"`
	Type       string         `json:"type,omitempty"`
	File       *HostedFile    `json:"file,omitempty"`
	External   *ExternalFile  `json:"external,omitempty"`
	FileUpload *FileUploadRef `json:"file_upload,omitempty"`
}

// URL 호스팅 방식과 무관하게 내려받기 가능한 주소를 돌려준다.
func (f File) URL() string {
	if f.File != nil {
		return f.File.URL
	}
	if f.External != nil {
		return f.External.URL
	}
	return ""
}

type HostedFile struct {
	URL        string `json:"url"`
	ExpiryTime string `json:"expiry_time,omitempty"`
}

type ExternalFile struct {
	URL string `json:"url"`
}

type FileUploadRef struct {
	ID string `json:"id"`
}

// RichTextEquals 데이터베이스 질의용 exact-match 필터를 만든다.
func RichTextEquals(property, value string) map[string]interface{} {
	return map[string]interface{}{
		"property": property,
		"rich_text": map[string]interface{}{
			"equals": value,
		},
	}
}

// RichTextProperty 평문 한 조각짜리 rich_text 속성 쓰기 페이로드
func RichTextProperty(content string) map[string]interface{} {
	return map[string]interface{}{
		"rich_text": []map[string]interface{}{
			{
				"type": "text",
				"text": map[string]interface{}{"content": content},
			},
		},
	}
}

// UploadedFilesProperty 스테이징된 업로드 파일 하나로 files 속성을 교체하는 페이로드
func UploadedFilesProperty(fileName, fileUploadID string) map[string]interface{} {
	return map[string]interface{}{
		"files": []map[string]interface{}{
			{
				"name":        fileName,
				"type":        "file_upload",
				"file_upload": map[string]interface{}{"id": fileUploadID},
			},
		},
	}
}

// ExternalFilesProperty 외부 URL 파일 하나로 files 속성을 교체하는 페이로드
func ExternalFilesProperty(fileName, url string) map[string]interface{} {
	return map[string]interface{}{
		"files": []map[string]interface{}{
			{
				"name":     fileName,
				"type":     "external",
				"external": map[string]interface{}{"url": url},
			},
		},
	}
}
