package models

type Testimonial struct {
	Base
	Name    string `json:"name"`
	Role    string `json:"role"`
	Avatar  string `json:"avatar"`
	Content string `json:"content"`
	Rating  int    `gorm:"check:rating >= 0 AND rating <= 5" json:"rating"`
}
