package repository

import (
	"context"
	"time"

	"learning_portal/backend/models"
	"learning_portal/backend/utils"

	"gorm.io/gorm"
)

type OrderRepository struct {
	base
}

func NewOrderRepository(db *gorm.DB, timeout time.Duration) *OrderRepository {
	return &OrderRepository{base: newBase(db, timeout)}
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	db, cancel := r.conn(ctx)
	defer cancel()
	return utils.ClassifyDBError(db.Create(order).Error, "order "+order.OrderCode)
}

func (r *OrderRepository) FindOrderByCode(ctx context.Context, code string) (*models.Order, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var order models.Order
	if err := db.Where("order_code = ?", code).First(&order).Error; err != nil {
		return nil, utils.ClassifyDBError(err, "order "+code)
	}
	return &order, nil
}

func (r *OrderRepository) SetCheckoutURL(ctx context.Context, code, url string) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	err := db.Model(&models.Order{}).Where("order_code = ?", code).Update("checkout_url", url).Error
	return utils.ClassifyDBError(err, "order "+code)
}

// Transition moves a pending order to status. It reports false when the
// order was no longer pending, which makes webhook replays harmless.
func (r *OrderRepository) Transition(ctx context.Context, code, status, gatewayRef string) (bool, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	updates := map[string]interface{}{"status": status}
	if gatewayRef != "" {
		updates["gateway_ref"] = gatewayRef
	}
	res := db.Model(&models.Order{}).
		Where("order_code = ? AND status = ?", code, models.OrderPending).
		Updates(updates)
	if res.Error != nil {
		return false, utils.ClassifyDBError(res.Error, "order "+code)
	}
	return res.RowsAffected == 1, nil
}
