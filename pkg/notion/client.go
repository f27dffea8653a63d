package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"astro_class_backend/internal/config"
	"astro_class_backend/pkg/monitoring"
)

const defaultBaseURL = "https://api.notion.com/v1"

// APIError 노션 API 가 돌려준 비정상 응답
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion API error (status %d, code %s): %s", e.StatusCode, e.Code, e.Message)
}

// Client 노션 API 클라이언트. 전역 싱글턴 대신 생성해서 주입한다.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	version    string
}

func NewClient(cfg *config.NotionConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    defaultBaseURL,
		apiKey:     cfg.APIKey,
		version:    cfg.Version,
	}
}

// NewClientWithBaseURL 테스트용. 가짜 서버 주소를 받을 수 있다.
func NewClientWithBaseURL(cfg *config.NotionConfig, baseURL string) *Client {
	c := NewClient(cfg)
	c.baseURL = baseURL
	return c
}

func (c *Client) do(ctx context.Context, operation, method, path string, body interface{}, out interface{}) error {
	start := time.Now()
	defer monitoring.ObserveNotion(operation, start)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", c.version)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		apiErr.Code = payload.Code
		apiErr.Message = payload.Message
	}
	return apiErr
}

// QueryDatabase exact-match 필터로 데이터베이스를 질의한다.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, filter map[string]interface{}) ([]Page, error) {
	body := map[string]interface{}{}
	if filter != nil {
		body["filter"] = filter
	}

	var result struct {
		Results []Page `json:"results"`
	}
	if err := c.do(ctx, "query_database", http.MethodPost, "/databases/"+databaseID+"/query", body, &result); err != nil {
		return nil, err
	}
	return result.Results, nil
}

// RetrievePage 페이지의 속성 전체를 가져온다.
func (c *Client) RetrievePage(ctx context.Context, pageID string) (*Page, error) {
	var page Page
	if err := c.do(ctx, "retrieve_page", http.MethodGet, "/pages/"+pageID, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UpdatePage 지정한 속성만 부분 갱신한다. 마지막 쓰기가 이긴다.
func (c *Client) UpdatePage(ctx context.Context, pageID string, properties map[string]interface{}) (*Page, error) {
	body := map[string]interface{}{"properties": properties}

	var page Page
	if err := c.do(ctx, "update_page", http.MethodPatch, "/pages/"+pageID, body, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// FileUpload 스테이징 업로드 공간. UploadURL 로 바이트를 전송한 뒤 ID 로 속성에 연결한다.
type FileUpload struct {
	ID        string `json:"id"`
	UploadURL string `json:"upload_url"`
}

// CreateFileUpload 1단계: 임시 업로드 공간을 예약한다.
func (c *Client) CreateFileUpload(ctx context.Context) (*FileUpload, error) {
	var upload FileUpload
	if err := c.do(ctx, "create_file_upload", http.MethodPost, "/file_uploads", map[string]interface{}{}, &upload); err != nil {
		return nil, err
	}
	return &upload, nil
}

// SendFileUpload 2단계: 예약된 주소로 파일 바이트를 전송하고 파일 ID 를 돌려준다.
func (c *Client) SendFileUpload(ctx context.Context, upload *FileUpload, fileName string, file io.Reader) (string, error) {
	start := time.Now()
	defer monitoring.ObserveNotion("send_file_upload", start)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, upload.UploadURL, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", c.version)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", decodeAPIError(resp)
	}

	var sent struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&sent); err != nil {
		return "", err
	}
	return sent.ID, nil
}

// Ping 봇 사용자 조회로 API 연결 상태를 확인한다.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, "ping", http.MethodGet, "/users/me", nil, nil)
}
