package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"astro_class_backend/internal/config"
	"astro_class_backend/internal/repository"
	"astro_class_backend/internal/service"
	"astro_class_backend/internal/testutil"
	"astro_class_backend/pkg/notion"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(fake *testutil.FakeNotion) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := config.NotionConfig{APIKey: "test-key", Version: "2022-06-28", Timeout: 5 * time.Second}
	client := notion.NewClientWithBaseURL(&cfg, fake.URL())
	repo := repository.NewStudentRepository(client, "db-1")
	c := NewAuthController(service.NewAuthService(repo))

	router := gin.New()
	router.GET("/api/auth", c.Lookup)
	router.POST("/api/auth", c.Login)
	router.PATCH("/api/auth", c.SetPassword)
	return router
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestLookupMissingName(t *testing.T) {
	fake := testutil.NewFakeNotion()
	defer fake.Close()

	w := doJSON(newAuthRouter(fake), http.MethodGet, "/api/auth", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "이름을 입력해주세요.", decodeEnvelope(t, w)["message"])
}

func TestLookupNotOnRoster(t *testing.T) {
	fake := testutil.NewFakeNotion()
	defer fake.Close()

	w := doJSON(newAuthRouter(fake), http.MethodGet, "/api/auth?name=%EC%97%86%EB%8A%94%EC%82%AC%EB%9E%8C", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "수강자 명단에 없습니다.", decodeEnvelope(t, w)["message"])
}

func TestLookupReturnsPageID(t *testing.T) {
	fake := testutil.NewFakeNotion(&testutil.FakePage{ID: "page-1", Name: "홍길동"})
	defer fake.Close()

	w := doJSON(newAuthRouter(fake), http.MethodGet, "/api/auth?name=%ED%99%8D%EA%B8%B8%EB%8F%99", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, true, data["exists"])
	assert.Equal(t, false, data["hasPassword"])
	assert.Equal(t, "page-1", data["pageId"])
}

func TestLoginMismatchReturns401(t *testing.T) {
	fake := testutil.NewFakeNotion(&testutil.FakePage{ID: "page-1", Name: "홍길동", Password: "123"})
	defer fake.Close()

	w := doJSON(newAuthRouter(fake), http.MethodPost, "/api/auth", gin.H{"name": "홍길동", "password": "456"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "비밀번호가 일치하지 않습니다.", decodeEnvelope(t, w)["message"])
}

// 응답에는 신원 정보만 담기고 비밀번호는 절대 내려가지 않는다.
func TestLoginSuccessOmitsPassword(t *testing.T) {
	fake := testutil.NewFakeNotion(&testutil.FakePage{ID: "page-1", Name: "홍길동", Password: "123"})
	defer fake.Close()

	w := doJSON(newAuthRouter(fake), http.MethodPost, "/api/auth", gin.H{"name": "홍길동", "password": "123"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "123")

	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	student := data["student"].(map[string]interface{})
	assert.Equal(t, "page-1", student["id"])
	assert.Equal(t, "홍길동", student["name"])
}

func TestSetPasswordMissingFields(t *testing.T) {
	fake := testutil.NewFakeNotion()
	defer fake.Close()

	w := doJSON(newAuthRouter(fake), http.MethodPatch, "/api/auth", gin.H{"pageId": "page-1"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "필요한 정보가 누락되었습니다.", decodeEnvelope(t, w)["message"])
}

// 서버에서도 숫자 3자리 형식을 검사한다.
func TestSetPasswordRejectsBadFormat(t *testing.T) {
	fake := testutil.NewFakeNotion(&testutil.FakePage{ID: "page-1", Name: "홍길동"})
	defer fake.Close()

	router := newAuthRouter(fake)
	for _, bad := range []string{"12", "1234", "abc", "12a"} {
		w := doJSON(router, http.MethodPatch, "/api/auth", gin.H{"pageId": "page-1", "password": bad})
		assert.Equal(t, http.StatusBadRequest, w.Code, "password %q", bad)
	}

	assert.Empty(t, fake.Updates())
}

func TestSetPasswordSuccess(t *testing.T) {
	fake := testutil.NewFakeNotion(&testutil.FakePage{ID: "page-1", Name: "홍길동"})
	defer fake.Close()

	w := doJSON(newAuthRouter(fake), http.MethodPatch, "/api/auth", gin.H{"pageId": "page-1", "password": "123"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "123", fake.Page("page-1").Password)

	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	student := data["student"].(map[string]interface{})
	assert.Equal(t, "홍길동", student["name"])
}
