//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// Grade is one evaluation result in a student's record.
type Grade struct {
	ID             int64    `json:"id"`
	SubjectName    string   `json:"subjectName"`
	SubjectCode    string   `json:"subjectCode,omitempty"`
	GradeValue     *float64 `json:"gradeValue,omitempty"`
	LetterGrade    string   `json:"letterGrade,omitempty"`
	Credits        int      `json:"credits,omitempty"`
	Semester       string   `json:"semester,omitempty"`
	AcademicYear   string   `json:"academicYear,omitempty"`
	EvaluationType string   `json:"evaluationType,omitempty"`
	EvaluationDate string   `json:"evaluationDate,omitempty"`
	MaxScore       *float64 `json:"maxScore,omitempty"`
	ObtainedScore  *float64 `json:"obtainedScore,omitempty"`
	Professor      string   `json:"professor,omitempty"`
	Comments       string   `json:"comments,omitempty"`
	Status         string   `json:"status,omitempty"`
	IsPublished    bool     `json:"isPublished"`
}

// GradeStats summarizes a student's academic standing.
type GradeStats struct {
	OverallGPA         *float64 `json:"overallGPA,omitempty"`
	CurrentSemesterGPA *float64 `json:"currentSemesterGPA,omitempty"`
	CompletedCredits   int      `json:"completedCredits"`
	TotalCredits       int      `json:"totalCredits"`
	ClassRank          int      `json:"classRank,omitempty"`
	TotalStudents      int      `json:"totalStudents,omitempty"`
}

// CreditProgress returns completed/total credits as a percentage, or 0 when unknown.
func (s GradeStats) CreditProgress() float64 {
	if s.TotalCredits <= 0 {
		return 0
	}
	return float64(s.CompletedCredits) / float64(s.TotalCredits) * 100
}

// Evaluation is an upcoming graded event.
type Evaluation struct {
	ID          int64  `json:"id"`
	SubjectName string `json:"subjectName"`
	Type        string `json:"type,omitempty"`
	Date        string `json:"date,omitempty"`
	Weight      int    `json:"weight,omitempty"`
}

// Transcript is the backend's consolidated grade record.
type Transcript struct {
	Student string      `json:"student,omitempty"`
	Grades  []Grade     `json:"grades"`
	Stats   *GradeStats `json:"stats,omitempty"`
}
