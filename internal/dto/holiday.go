package dto

// CreateHolidayRequest is the body for POST /holiday/add.
type CreateHolidayRequest struct {
	Date   string `json:"date" validate:"required"`
	Reason string `json:"reason" validate:"required"`
}

// DeleteHolidayRequest is the body for DELETE /holiday/delete.
type DeleteHolidayRequest struct {
	ID int64 `json:"id" validate:"required"`
}

// DeleteHolidayResponse acknowledges a deletion.
type DeleteHolidayResponse struct {
	Success bool `json:"success"`
}
