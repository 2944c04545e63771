package models

const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderCancelled = "cancelled"
)

type Order struct {
	Base
	OrderCode   string `gorm:"uniqueIndex;size:64;not null" json:"orderCode"`
	UserID      uint   `gorm:"index;not null" json:"userId"`
	CourseID    uint   `gorm:"index;not null" json:"courseId"`
	Amount      int64  `json:"amount"`
	Status      string `gorm:"default:pending;not null" json:"status"` // pending, paid, cancelled
	CheckoutURL string `json:"checkoutUrl"`
	GatewayRef  string `json:"gatewayRef,omitempty"`
}
