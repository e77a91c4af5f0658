package models

import "time"

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "P"
	AttendanceStatusAbsent  AttendanceStatus = "A"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent:
		return true
	default:
		return false
	}
}

// Attendance represents a single persisted attendance row. The pair
// (date, student_id) is unique; a second write for the same pair updates
// status/standard/class in place.
type Attendance struct {
	ID        int64            `db:"id" json:"id"`
	Date      time.Time        `db:"date" json:"date"`
	StudentID int64            `db:"student_id" json:"studentId"`
	Standard  string           `db:"standard" json:"standard"`
	Class     string           `db:"class" json:"class"`
	Status    AttendanceStatus `db:"status" json:"status"`
	Reason    *string          `db:"reason" json:"reason,omitempty"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt time.Time        `db:"updated_at" json:"updated_at"`
}

// AttendanceFilter scopes range queries. Date bounds are inclusive.
type AttendanceFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Standard string
	Class    string
	Status   *AttendanceStatus
}

// AttendanceUpdate carries the fields a targeted update may change.
type AttendanceUpdate struct {
	Status *AttendanceStatus
	Reason *string
}

// AbsenceQueryOptions parameterises the absence listing; the three legacy
// route variants collapse into this one structure.
type AbsenceQueryOptions struct {
	DateFrom time.Time
	DateTo   time.Time
	Standard string
	Class    string
}

// EnrichedAbsence is an attendance row joined with directory identity data.
// Never persisted; sentinel values stand in when the directory has no match.
type EnrichedAbsence struct {
	ID        int64     `json:"id"`
	Date      time.Time `json:"date"`
	StudentID int64     `json:"studentId"`
	RollNo    string    `json:"rollNo"`
	Name      string    `json:"name"`
	Standard  string    `json:"standard"`
	Class     string    `json:"class"`
	Reason    *string   `json:"reason"`
}

// EnrichedAttendance is the monthly listing row shape.
type EnrichedAttendance struct {
	ID          int64            `json:"id"`
	StudentID   int64            `json:"studentId"`
	StudentName string           `json:"studentName"`
	RollNo      string           `json:"rollNo"`
	Date        time.Time        `json:"date"`
	Status      AttendanceStatus `json:"status"`
	Reason      *string          `json:"reason"`
}
