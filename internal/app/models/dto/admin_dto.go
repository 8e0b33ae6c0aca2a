package dto

// AdminLoginRequest represents admin login credentials
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ApproveStudentRequest approves or unapproves a single student
type ApproveStudentRequest struct {
	RollNumber string `json:"rollNumber" binding:"required"`
	Approve    *bool  `json:"approve" binding:"required"`
}

// BulkApproveRequest applies the same approval state to many students
type BulkApproveRequest struct {
	RollNumbers []string `json:"rollNumbers" binding:"required,min=1"`
	Approve     *bool    `json:"approve" binding:"required"`
}

// BulkApproveResponse reports how many rows the bulk update touched.
// Non-matching roll numbers are silently ignored.
type BulkApproveResponse struct {
	Message       string `json:"message"`
	ModifiedCount int64  `json:"modifiedCount"`
}

// BulkDeleteRequest removes many students (and their applications)
type BulkDeleteRequest struct {
	RollNumbers []string `json:"rollNumbers" binding:"required,min=1"`
}

// BulkDeleteResponse reports how many students the bulk delete removed
type BulkDeleteResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}
