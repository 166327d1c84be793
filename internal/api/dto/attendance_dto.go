package dto

// CheckInRequest presents the student's account at the desk.
type CheckInRequest struct {
	Account string `json:"account" validate:"required"`
}

// NoShowRecordResponse is one monthly tally joined with identity.
type NoShowRecordResponse struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	YearMonth      string `json:"year_month"`
	Count          int    `json:"count"`
	StudentName    string `json:"student_name"`
	StudentAccount string `json:"student_account"`
}
