package model

import "time"

// AcademicReport 학생 페이지 속성을 정규화한 결과. 저장하지 않고 조회할 때마다 다시 계산한다.
type AcademicReport struct {
	Group            *int              `json:"group"`
	Attendance       []AttendanceEntry `json:"attendance"`
	Assignments      []Assignment      `json:"assignments"`
	PracticeSessions []PracticeSession `json:"practiceSessions"`
	FinalExamScore   *float64          `json:"finalExamScore"`
}

// AttendanceEntry 날짜는 "MM/DD" 형식 속성 이름 그대로다.
type AttendanceEntry struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

type Assignment struct {
	Name        string          `json:"name"`
	File        *AssignmentFile `json:"file,omitempty"`
	SubmittedAt *time.Time      `json:"submittedAt,omitempty"`
	Score       *float64        `json:"score,omitempty"`
}

type AssignmentFile struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type PracticeSession struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}
