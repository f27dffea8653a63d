package controller

import (
	"net/http"
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

func newReportRouter(fake *testutil.FakeNotion) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := config.NotionConfig{APIKey: "test-key", Version: "2022-06-28", Timeout: 5 * time.Second}
	client := notion.NewClientWithBaseURL(&cfg, fake.URL())
	repo := repository.NewStudentRepository(client, "db-1")
	c := NewReportController(service.NewReportService(repo))

	router := gin.New()
	router.GET("/api/data", c.GetReport)
	return router
}

func TestGetReportMissingStudentID(t *testing.T) {
	fake := testutil.NewFakeNotion()
	defer fake.Close()

	w := doJSON(newReportRouter(fake), http.MethodGet, "/api/data", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "학생 ID가 필요합니다.", decodeEnvelope(t, w)["message"])
}

func TestGetReportUnknownPage(t *testing.T) {
	fake := testutil.NewFakeNotion()
	defer fake.Close()

	w := doJSON(newReportRouter(fake), http.MethodGet, "/api/data?studentId=no-such-page", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "데이터를 가져오는 중 오류가 발생했습니다.", decodeEnvelope(t, w)["message"])
}

func TestGetReportProjectsProperties(t *testing.T) {
	fake := testutil.NewFakeNotion(&testutil.FakePage{
		ID:   "page-1",
		Name: "홍길동",
		Extra: map[string]interface{}{
			"그룹": map[string]interface{}{"type": "number", "number": 2},
			"09/05": map[string]interface{}{
				"type":   "status",
				"status": map[string]interface{}{"name": "출석"},
			},
			"Homework1 점수": map[string]interface{}{"type": "number", "number": 95},
			"기말고사 점수":      map[string]interface{}{"type": "number", "number": 88},
			"실습1": map[string]interface{}{
				"type":   "status",
				"status": map[string]interface{}{"name": "완료"},
			},
		},
	})
	defer fake.Close()

	w := doJSON(newReportRouter(fake), http.MethodGet, "/api/data?studentId=page-1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})

	assert.Equal(t, float64(2), data["group"])
	assert.Equal(t, float64(88), data["finalExamScore"])

	attendance := data["attendance"].([]interface{})
	require.Len(t, attendance, 1)
	entry := attendance[0].(map[string]interface{})
	assert.Equal(t, "09/05", entry["date"])
	assert.Equal(t, "출석", entry["status"])

	assignments := data["assignments"].([]interface{})
	require.Len(t, assignments, 1)
	assignment := assignments[0].(map[string]interface{})
	assert.Equal(t, "Homework1", assignment["name"])
	assert.Equal(t, float64(95), assignment["score"])

	practice := data["practiceSessions"].([]interface{})
	require.Len(t, practice, 1)
	session := practice[0].(map[string]interface{})
	assert.Equal(t, "실습1", session["name"])
	assert.Equal(t, "완료", session["status"])
}
