package dto

type AddMoneyRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

type EnrollCourseRequest struct {
	CourseID string `json:"course_id" validate:"required,uuid"`
}

type TopUpRequest struct {
	Amount int64  `json:"amount" validate:"required,gt=0"`
	Email  string `json:"email" validate:"omitempty,email"`
}
