package service

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"astro_class_backend/internal/model"
	"astro_class_backend/internal/repository"
	"astro_class_backend/internal/util"
	"astro_class_backend/pkg/notion"
)

// 속성 이름 규약. 하나의 데이터베이스 모양에 고정되어 있다.
const (
	groupField       = "그룹"
	finalExamField   = "기말고사 점수"
	finalExamMark    = "기말고사"
	scoreSuffix      = "점수"
	assignmentPrefix = "Homework"
	practicePrefix   = "실습"
	noRecordStatus   = "기록 없음"
)

var attendancePattern = regexp.MustCompile(`^\d{2}/\d{2}`)

type factKind int

const (
	factNone factKind = iota
	factGroup
	factAttendance
	factAssignmentFile
	factAssignmentScore
	factFinalExam
	factPractice
)

// fact 속성 하나를 분류한 결과. 어떤 속성도 둘 이상의 fact 가 되지 않는다.
type fact struct {
	kind   factKind
	name   string
	status string
	number *float64
	file   *model.AssignmentFile
}

// classifyField 속성 이름과 값을 보고 0개 또는 1개의 fact 로 분류한다.
// 규칙 순서가 기말고사 점수와 과제별 점수의 상호 배제를 보장한다.
// 어느 규칙에도 맞지 않는 속성은 조용히 버린다.
func classifyField(name string, pv notion.PropertyValue) fact {
	switch {
	case name == groupField && pv.Type == "number":
		return fact{kind: factGroup, number: pv.Number}

	case attendancePattern.MatchString(name) && pv.Type == "status":
		return fact{kind: factAttendance, name: name, status: statusName(pv)}

	case strings.HasPrefix(name, assignmentPrefix) && pv.Type == "files":
		f := fact{kind: factAssignmentFile, name: name}
		if len(pv.Files) > 0 {
			first := pv.Files[0]
			f.file = &model.AssignmentFile{Name: first.Name, URL: first.URL()}
		}
		return f

	case strings.HasSuffix(name, scoreSuffix) && !strings.Contains(name, finalExamMark) && pv.Type == "number":
		normalized := strings.TrimSpace(strings.TrimSuffix(name, scoreSuffix))
		return fact{kind: factAssignmentScore, name: normalized, number: pv.Number}

	case name == finalExamField && pv.Type == "number":
		return fact{kind: factFinalExam, number: pv.Number}

	case strings.HasPrefix(name, practicePrefix) && pv.Type == "status":
		return fact{kind: factPractice, name: name, status: statusName(pv)}
	}

	return fact{kind: factNone}
}

func statusName(pv notion.PropertyValue) string {
	if pv.Status == nil || pv.Status.Name == "" {
		return noRecordStatus
	}
	return pv.Status.Name
}

// Project 속성 가방 전체를 한 번 순회해 리포트로 접는다. 순회 순서와 무관하게 같은 결과가 나오고,
// 값이 빠졌거나 형식이 어긋난 속성은 실패 대신 기본값으로 처리한다.
// 파일 제출 시각은 페이지 전체의 마지막 수정 시각이다. 속성별 이력은 저장소가 제공하지 않는다.
func Project(props map[string]notion.PropertyValue, lastEdited time.Time) *model.AcademicReport {
	report := &model.AcademicReport{
		Attendance:       []model.AttendanceEntry{},
		Assignments:      []model.Assignment{},
		PracticeSessions: []model.PracticeSession{},
	}
	slots := map[string]*model.Assignment{}

	slotFor := func(name string) *model.Assignment {
		if slot, ok := slots[name]; ok {
			return slot
		}
		slot := &model.Assignment{Name: name}
		slots[name] = slot
		return slot
	}

	for name, pv := range props {
		f := classifyField(name, pv)
		switch f.kind {
		case factGroup:
			if f.number != nil {
				g := int(*f.number)
				report.Group = &g
			}

		case factAttendance:
			report.Attendance = append(report.Attendance, model.AttendanceEntry{
				Date:   f.name,
				Status: f.status,
			})

		case factAssignmentFile:
			slot := slotFor(f.name)
			if f.file != nil {
				slot.File = f.file
				submittedAt := lastEdited
				slot.SubmittedAt = &submittedAt
			}

		case factAssignmentScore:
			slotFor(f.name).Score = f.number

		case factFinalExam:
			report.FinalExamScore = f.number

		case factPractice:
			report.PracticeSessions = append(report.PracticeSessions, model.PracticeSession{
				Name:   f.name,
				Status: f.status,
			})
		}
	}

	for _, slot := range slots {
		report.Assignments = append(report.Assignments, *slot)
	}

	sort.Slice(report.Attendance, func(i, j int) bool {
		return report.Attendance[i].Date < report.Attendance[j].Date
	})
	sort.Slice(report.Assignments, func(i, j int) bool {
		return util.CompareNatural(report.Assignments[i].Name, report.Assignments[j].Name) < 0
	})
	sort.Slice(report.PracticeSessions, func(i, j int) bool {
		return util.CompareNatural(report.PracticeSessions[i].Name, report.PracticeSessions[j].Name) < 0
	})

	return report
}

// ReportService 학생 페이지를 읽어 학업 리포트를 만든다.
type ReportService struct {
	StudentRepo *repository.StudentRepository
}

func NewReportService(studentRepo *repository.StudentRepository) *ReportService {
	return &ReportService{StudentRepo: studentRepo}
}

func (s *ReportService) GetReport(ctx context.Context, studentID string) (*model.AcademicReport, error) {
	page, err := s.StudentRepo.Retrieve(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return Project(page.Properties, page.LastEditedTime), nil
}
