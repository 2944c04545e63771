package models

type Course struct {
	Base
	Title       string  `gorm:"not null" json:"title"`
	Description string  `json:"description"`
	Thumbnail   string  `json:"thumbnail"`
	Category    string  `gorm:"index" json:"category"`
	Level       string  `json:"level"` // beginner, intermediate, advanced
	Price       int64   `gorm:"not null;default:0;check:price >= 0" json:"price"`
	Duration    string  `json:"duration"`
	Instructor  string  `json:"instructor"`
	Students    int     `gorm:"default:0" json:"students"`
	Rating      float64 `gorm:"default:0" json:"rating"`
	Reviews     int     `gorm:"default:0" json:"reviews"`
}

// IsFree reports whether enrolling needs no payment.
func (c *Course) IsFree() bool {
	return c.Price == 0
}

type Lesson struct {
	Base
	CourseID      uint   `gorm:"index;not null" json:"courseId"`
	Title         string `gorm:"not null" json:"title"`
	VideoURL      string `json:"videoUrl"`
	Duration      string `json:"duration"`
	SequenceOrder int    `json:"sequenceOrder"`
}
