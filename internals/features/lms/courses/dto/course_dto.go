package dto

type CreateCourseRequest struct {
	Name          string   `json:"name" form:"name" validate:"required,min=3,max=150"`
	Price         int      `json:"price" form:"price" validate:"gte=0"`
	OfferPrice    int      `json:"offerprice" form:"offerprice" validate:"gte=0"`
	Description   string   `json:"description" form:"description" validate:"required"`
	KeyPoints     []string `json:"key_points" form:"key_points" validate:"required,min=1,dive,required"`
	Highlights    []string `json:"highlights" form:"highlights" validate:"required,min=1,dive,required"`
	Category      string   `json:"category" form:"category" validate:"required"`
	InstructorID  string   `json:"instructor_id" form:"instructor_id" validate:"required,uuid"`
	VideoURL      string   `json:"video_url" form:"video_url" validate:"omitempty,url"`
}

type UpdateCourseRequest struct {
	Name        *string   `json:"name" form:"name" validate:"omitempty,min=3,max=150"`
	Price       *int      `json:"price" form:"price" validate:"omitempty,gte=0"`
	OfferPrice  *int      `json:"offerprice" form:"offerprice" validate:"omitempty,gte=0"`
	Description *string   `json:"description" form:"description"`
	KeyPoints   *[]string `json:"key_points" form:"key_points" validate:"omitempty,min=1,dive,required"`
	Highlights  *[]string `json:"highlights" form:"highlights" validate:"omitempty,min=1,dive,required"`
	Category    *string   `json:"category" form:"category"`
	VideoURL    *string   `json:"video_url" form:"video_url" validate:"omitempty,url"`
}
