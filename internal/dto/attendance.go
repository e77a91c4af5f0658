package dto

// AttendanceEntry is one student's status within a marking batch.
type AttendanceEntry struct {
	StudentID int64  `json:"studentId" validate:"required"`
	Status    string `json:"status" validate:"required"`
}

// MarkAttendanceRequest is the body for POST /attendance.
type MarkAttendanceRequest struct {
	Date       string            `json:"date" validate:"required"`
	Standard   string            `json:"standard" validate:"required"`
	Class      string            `json:"class" validate:"required"`
	Attendance []AttendanceEntry `json:"attendance"`
}

// MarkAttendanceResponse mirrors the legacy write acknowledgement.
type MarkAttendanceResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UpdateAttendanceRequest is the body for POST /update-attendance.
type UpdateAttendanceRequest struct {
	ID       int64   `json:"id" validate:"required"`
	Status   string  `json:"status" validate:"required"`
	Reason   *string `json:"reason"`
	Standard string  `json:"standard"`
	Class    string  `json:"className"`
}

// UpdateReasonRequest is the body for POST /absent-students. The legacy
// contract names the record id "studentId"; kept for client compatibility.
type UpdateReasonRequest struct {
	StudentID *int64  `json:"studentId" validate:"required"`
	Reason    *string `json:"reason" validate:"required"`
}
