package dto

type CreateInstructorRequest struct {
	Name          string `json:"name" validate:"required,min=3,max=100"`
	FatherName    string `json:"fathername" validate:"omitempty,max=100"`
	Qualification string `json:"qualification" validate:"omitempty,max=100"`
	Gender        string `json:"gender" validate:"omitempty,oneof=male female"`
	Address       string `json:"address"`
	City          string `json:"city" validate:"omitempty,max=100"`
	State         string `json:"state" validate:"omitempty,max=100"`
	Country       string `json:"country" validate:"omitempty,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
}

type UpdateInstructorRequest struct {
	Email    string `json:"email" validate:"required,email"`
	NewEmail string `json:"new_email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=8"`
}

type DeleteInstructorRequest struct {
	Email string `json:"email" validate:"required,email"`
}
