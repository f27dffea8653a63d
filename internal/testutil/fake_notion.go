// Package testutil 테스트에서 쓰는 가짜 노션 API 서버.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
)

const DefaultLastEdited = "2025-09-10T12:00:00.000Z"

// FakePage 가짜 저장소의 학생 페이지 하나
type FakePage struct {
	ID         string
	Name       string
	Password   string
	LastEdited string
	// Extra 이름/비밀번호 외의 속성 (노션 JSON 그대로)
	Extra map[string]interface{}
}

// UpdateCall UpdatePage 호출 기록
type UpdateCall struct {
	PageID     string
	Properties map[string]interface{}
}

// FakeNotion QueryDatabase, RetrievePage, UpdatePage 와 파일 업로드 2단계를 흉내낸다.
type FakeNotion struct {
	Server *httptest.Server

	mu      sync.Mutex
	pages   map[string]*FakePage
	updates []UpdateCall

	// ReserveFail / TransferFail 업로드 단계별 실패 주입
	ReserveFail  bool
	TransferFail bool
}

func NewFakeNotion(pages ...*FakePage) *FakeNotion {
	f := &FakeNotion{pages: map[string]*FakePage{}}
	for _, p := range pages {
		if p.LastEdited == "" {
			p.LastEdited = DefaultLastEdited
		}
		f.pages[p.ID] = p
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /databases/{id}/query", f.handleQuery)
	mux.HandleFunc("GET /pages/{id}", f.handleRetrieve)
	mux.HandleFunc("PATCH /pages/{id}", f.handleUpdate)
	mux.HandleFunc("POST /file_uploads", f.handleCreateUpload)
	mux.HandleFunc("POST /send_upload", f.handleSendUpload)

	f.Server = httptest.NewServer(mux)
	return f
}

func (f *FakeNotion) Close() { f.Server.Close() }

func (f *FakeNotion) URL() string { return f.Server.URL }

// Updates 지금까지의 UpdatePage 호출 기록 복사본
func (f *FakeNotion) Updates() []UpdateCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]UpdateCall, len(f.updates))
	copy(out, f.updates)
	return out
}

// Page 저장된 페이지 조회 (테스트 단언용)
func (f *FakeNotion) Page(id string) *FakePage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pages[id]
}

func (f *FakeNotion) renderPage(p *FakePage) map[string]interface{} {
	props := map[string]interface{}{
		"이름": map[string]interface{}{
			"type":  "title",
			"title": []map[string]interface{}{{"type": "text", "plain_text": p.Name}},
		},
	}

	passwordSegments := []map[string]interface{}{}
	if p.Password != "" {
		passwordSegments = append(passwordSegments, map[string]interface{}{"type": "text", "plain_text": p.Password})
	}
	props["비밀번호"] = map[string]interface{}{
		"type":      "rich_text",
		"rich_text": passwordSegments,
	}

	for name, value := range p.Extra {
		props[name] = value
	}

	return map[string]interface{}{
		"id":               p.ID,
		"last_edited_time": p.LastEdited,
		"properties":       props,
	}
}

func (f *FakeNotion) handleQuery(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Filter struct {
			Property string `json:"property"`
			RichText struct {
				Equals string `json:"equals"`
			} `json:"rich_text"`
		} `json:"filter"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid body")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	results := []map[string]interface{}{}
	for _, p := range f.pages {
		if p.Name == body.Filter.RichText.Equals {
			results = append(results, f.renderPage(p))
		}
	}

	writeJSON(w, map[string]interface{}{"results": results})
}

func (f *FakeNotion) handleRetrieve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.pages[r.PathValue("id")]
	if !ok {
		writeError(w, http.StatusNotFound, "object_not_found", "page not found")
		return
	}
	writeJSON(w, f.renderPage(p))
}

func (f *FakeNotion) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Properties map[string]interface{} `json:"properties"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid body")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.pages[r.PathValue("id")]
	if !ok {
		writeError(w, http.StatusNotFound, "object_not_found", "page not found")
		return
	}

	f.updates = append(f.updates, UpdateCall{PageID: p.ID, Properties: body.Properties})

	if raw, ok := body.Properties["비밀번호"]; ok {
		p.Password = extractRichTextContent(raw)
	}
	for name, value := range body.Properties {
		if name == "비밀번호" {
			continue
		}
		if p.Extra == nil {
			p.Extra = map[string]interface{}{}
		}
		p.Extra[name] = value
	}

	writeJSON(w, f.renderPage(p))
}

func (f *FakeNotion) handleCreateUpload(w http.ResponseWriter, r *http.Request) {
	if f.ReserveFail {
		writeError(w, http.StatusInternalServerError, "internal_server_error", "upload space unavailable")
		return
	}
	writeJSON(w, map[string]interface{}{
		"id":         "upload-1",
		"upload_url": f.Server.URL + "/send_upload",
	})
}

func (f *FakeNotion) handleSendUpload(w http.ResponseWriter, r *http.Request) {
	if f.TransferFail {
		writeError(w, http.StatusInternalServerError, "internal_server_error", "transfer failed")
		return
	}
	writeJSON(w, map[string]interface{}{"id": "upload-1"})
}

func extractRichTextContent(raw interface{}) string {
	prop, ok := raw.(map[string]interface{})
	if !ok {
		return ""
	}
	segments, ok := prop["rich_text"].([]interface{})
	if !ok || len(segments) == 0 {
		return ""
	}
	first, ok := segments[0].(map[string]interface{})
	if !ok {
		return ""
	}
	text, ok := first["text"].(map[string]interface{})
	if !ok {
		return ""
	}
	content, _ := text["content"].(string)
	return content
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"object":  "error",
		"status":  status,
		"code":    code,
		"message": message,
	})
}
