package service

import (
	"context"
	"testing"
	"time"

	"astro_class_backend/internal/repository"
	"astro_class_backend/internal/testutil"
	"astro_class_backend/pkg/notion"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberProp(v float64) notion.PropertyValue {
	return notion.PropertyValue{Type: "number", Number: &v}
}

func emptyNumberProp() notion.PropertyValue {
	return notion.PropertyValue{Type: "number"}
}

func statusProp(name string) notion.PropertyValue {
	return notion.PropertyValue{Type: "status", Status: &notion.StatusValue{Name: name}}
}

func emptyStatusProp() notion.PropertyValue {
	return notion.PropertyValue{Type: "status"}
}

func filesProp(files ...notion.File) notion.PropertyValue {
	if files == nil {
		files = []notion.File{}
	}
	return notion.PropertyValue{Type: "files", Files: files}
}

func hostedFile(name, url string) notion.File {
	return notion.File{Name: name, Type: "file", File: &notion.HostedFile{URL: url}}
}

func textProp(content string) notion.PropertyValue {
	return notion.PropertyValue{Type: "rich_text", RichText: []notion.RichText{{PlainText: content}}}
}

func TestProjectEndToEnd(t *testing.T) {
	lastEdited := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)
	bag := map[string]notion.PropertyValue{
		"그룹":      numberProp(2),
		"09/10":   statusProp("출석"),
		"Homework1": filesProp(),
		"Homework1 점수": numberProp(90),
		"기말고사 점수":     numberProp(85),
	}

	report := Project(bag, lastEdited)

	require.NotNil(t, report.Group)
	assert.Equal(t, 2, *report.Group)

	require.Len(t, report.Attendance, 1)
	assert.Equal(t, "09/10", report.Attendance[0].Date)
	assert.Equal(t, "출석", report.Attendance[0].Status)

	require.Len(t, report.Assignments, 1)
	assert.Equal(t, "Homework1", report.Assignments[0].Name)
	require.NotNil(t, report.Assignments[0].Score)
	assert.Equal(t, 90.0, *report.Assignments[0].Score)
	assert.Nil(t, report.Assignments[0].File)
	assert.Nil(t, report.Assignments[0].SubmittedAt)

	assert.Empty(t, report.PracticeSessions)

	require.NotNil(t, report.FinalExamScore)
	assert.Equal(t, 85.0, *report.FinalExamScore)
}

func TestProjectFinalExamNeverFoldsIntoAssignments(t *testing.T) {
	bag := map[string]notion.PropertyValue{
		"기말고사 점수": numberProp(85),
	}

	report := Project(bag, time.Now())

	assert.Empty(t, report.Assignments)
	require.NotNil(t, report.FinalExamScore)
	assert.Equal(t, 85.0, *report.FinalExamScore)
}

func TestProjectMergesFileAndScoreByName(t *testing.T) {
	lastEdited := time.Date(2025, 10, 1, 9, 30, 0, 0, time.UTC)
	bag := map[string]notion.PropertyValue{
		"Homework3":    filesProp(hostedFile("report.pdf", "https://files.example/report.pdf")),
		"Homework3 점수": numberProp(77),
	}

	report := Project(bag, lastEdited)

	require.Len(t, report.Assignments, 1)
	a := report.Assignments[0]
	assert.Equal(t, "Homework3", a.Name)
	require.NotNil(t, a.File)
	assert.Equal(t, "report.pdf", a.File.Name)
	assert.Equal(t, "https://files.example/report.pdf", a.File.URL)
	require.NotNil(t, a.SubmittedAt)
	assert.Equal(t, lastEdited, *a.SubmittedAt)
	require.NotNil(t, a.Score)
	assert.Equal(t, 77.0, *a.Score)
}

func TestProjectScoreWithoutMatchingFileFieldKeepsSeparateEntry(t *testing.T) {
	bag := map[string]notion.PropertyValue{
		"Homework1":    filesProp(),
		"Homework2 점수": numberProp(50),
	}

	report := Project(bag, time.Now())

	require.Len(t, report.Assignments, 2)
	assert.Equal(t, "Homework1", report.Assignments[0].Name)
	assert.Equal(t, "Homework2", report.Assignments[1].Name)
}

func TestProjectSorting(t *testing.T) {
	bag := map[string]notion.PropertyValue{
		"10/08":         statusProp("출석"),
		"09/10":         statusProp("지각"),
		"11/05":         statusProp("결석"),
		"실습10":          statusProp("완료"),
		"실습2":           statusProp("완료"),
		"Homework10":    filesProp(),
		"Homework2":     filesProp(),
		"Homework2 점수":  numberProp(80),
		"Homework10 점수": numberProp(60),
	}

	report := Project(bag, time.Now())

	dates := []string{}
	for _, a := range report.Attendance {
		dates = append(dates, a.Date)
	}
	assert.Equal(t, []string{"09/10", "10/08", "11/05"}, dates)

	names := []string{}
	for _, a := range report.Assignments {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"Homework2", "Homework10"}, names)

	practice := []string{}
	for _, p := range report.PracticeSessions {
		practice = append(practice, p.Name)
	}
	assert.Equal(t, []string{"실습2", "실습10"}, practice)
}

func TestProjectMissingValueFallbacks(t *testing.T) {
	bag := map[string]notion.PropertyValue{
		"그룹":      emptyNumberProp(),
		"기말고사 점수": emptyNumberProp(),
		"09/17":   emptyStatusProp(),
		"실습1":     emptyStatusProp(),
	}

	report := Project(bag, time.Now())

	assert.Nil(t, report.Group)
	assert.Nil(t, report.FinalExamScore)

	require.Len(t, report.Attendance, 1)
	assert.Equal(t, "기록 없음", report.Attendance[0].Status)

	require.Len(t, report.PracticeSessions, 1)
	assert.Equal(t, "기록 없음", report.PracticeSessions[0].Status)
}

func TestProjectDropsUnknownFields(t *testing.T) {
	bag := map[string]notion.PropertyValue{
		"이름":        {Type: "title", Title: []notion.RichText{{PlainText: "홍길동"}}},
		"비밀번호":      textProp("123"),
		"메모":        textProp("임의의 내용"),
		"그룹":        textProp("숫자가 아님"), // number 태그가 아니면 그룹으로 치지 않는다
		"Homework1": numberProp(10),    // files 태그가 아니면 과제로 치지 않는다
	}

	report := Project(bag, time.Now())

	assert.Nil(t, report.Group)
	assert.Empty(t, report.Attendance)
	assert.Empty(t, report.Assignments)
	assert.Empty(t, report.PracticeSessions)
	assert.Nil(t, report.FinalExamScore)
}

func TestClassifyFieldAtMostOneFact(t *testing.T) {
	values := map[string]notion.PropertyValue{
		"그룹":           numberProp(1),
		"09/10":        statusProp("출석"),
		"Homework1":    filesProp(),
		"Homework1 점수": numberProp(90),
		"기말고사 점수":      numberProp(85),
		"실습1":          statusProp("완료"),
		"메모":           textProp("x"),
	}

	wantKinds := map[string]factKind{
		"그룹":           factGroup,
		"09/10":        factAttendance,
		"Homework1":    factAssignmentFile,
		"Homework1 점수": factAssignmentScore,
		"기말고사 점수":      factFinalExam,
		"실습1":          factPractice,
		"메모":           factNone,
	}

	for name, pv := range values {
		f := classifyField(name, pv)
		assert.Equal(t, wantKinds[name], f.kind, "field %q", name)
	}
}

func TestClassifyFieldNormalizesScoreName(t *testing.T) {
	f := classifyField("Homework1 점수", numberProp(90))
	assert.Equal(t, factAssignmentScore, f.kind)
	assert.Equal(t, "Homework1", f.name)
}

func TestGetReportReadsPageFromStore(t *testing.T) {
	fake := testutil.NewFakeNotion(&testutil.FakePage{
		ID:   "page-1",
		Name: "홍길동",
		Extra: map[string]interface{}{
			"그룹": map[string]interface{}{"type": "number", "number": 2},
			"09/10": map[string]interface{}{
				"type":   "status",
				"status": map[string]interface{}{"name": "출석"},
			},
		},
	})
	defer fake.Close()

	svc := NewReportService(newTestRepository(fake))

	report, err := svc.GetReport(context.Background(), "page-1")
	require.NoError(t, err)

	require.NotNil(t, report.Group)
	assert.Equal(t, 2, *report.Group)
	require.Len(t, report.Attendance, 1)
	assert.Equal(t, "출석", report.Attendance[0].Status)
}

func TestGetReportPropagatesStoreError(t *testing.T) {
	fake := testutil.NewFakeNotion()
	defer fake.Close()

	svc := NewReportService(newTestRepository(fake))

	_, err := svc.GetReport(context.Background(), "missing-page")
	require.Error(t, err)

	var apiErr *notion.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
}

func newTestRepository(fake *testutil.FakeNotion) *repository.StudentRepository {
	cfg := testNotionConfig()
	client := notion.NewClientWithBaseURL(&cfg, fake.URL())
	return repository.NewStudentRepository(client, "db-1")
}
