package services

import (
	"context"
	"strconv"
	"strings"

	"learning_portal/backend/models"
	"learning_portal/backend/payment"
	"learning_portal/backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CheckoutResult struct {
	OrderCode   string `json:"orderCode,omitempty"`
	CheckoutURL string `json:"checkoutUrl,omitempty"`
	Enrolled    bool   `json:"enrolled"`
}

// Notification is the gateway webhook payload. Both the documented
// orderCode/resultCode names and the provider's native names are accepted.
type Notification struct {
	OrderCode         string `json:"orderCode"`
	ResultCode        string `json:"resultCode"`
	Status            string `json:"transactionStatus"`
	Amount            string `json:"grossAmount"`
	Signature         string `json:"signature"`
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	GrossAmount       string `json:"gross_amount"`
	TransactionStatus string `json:"transaction_status"`
	TransactionID     string `json:"transaction_id"`
}

func (n *Notification) normalize() {
	if n.OrderCode == "" {
		n.OrderCode = n.OrderID
	}
	if n.ResultCode == "" {
		n.ResultCode = n.StatusCode
	}
	if n.Signature == "" {
		n.Signature = n.SignatureKey
	}
	if n.GrossAmount == "" {
		n.GrossAmount = n.Amount
	}
	if n.TransactionStatus == "" {
		n.TransactionStatus = n.Status
	}
	n.TransactionStatus = strings.ToLower(n.TransactionStatus)
}

func (n *Notification) succeeded() bool {
	if n.ResultCode != "200" {
		return false
	}
	switch n.TransactionStatus {
	case "", "settlement", "capture":
		return true
	}
	return false
}

func (n *Notification) failed() bool {
	switch n.TransactionStatus {
	case "cancel", "deny", "expire", "failure":
		return true
	}
	return false
}

type WebhookResult struct {
	Status      string `json:"status"` // ok, ignored
	OrderStatus string `json:"orderStatus,omitempty"`
	Enrolled    bool   `json:"enrolled"`
}

// PaymentService creates orders for paid courses and applies gateway
// notifications. A paid order enrolls the user through EnrollmentService.
type PaymentService struct {
	catalog    CatalogReader
	users      UserStore
	orders     OrderStore
	enrollment *EnrollmentService
	gateway    payment.Gateway
	serverKey  string
	log        *zap.Logger
}

func NewPaymentService(catalog CatalogReader, users UserStore, orders OrderStore, enrollment *EnrollmentService,
	gateway payment.Gateway, serverKey string, log *zap.Logger) *PaymentService {
	return &PaymentService{
		catalog:    catalog,
		users:      users,
		orders:     orders,
		enrollment: enrollment,
		gateway:    gateway,
		serverKey:  serverKey,
		log:        log,
	}
}

// Checkout enrolls directly into free courses and otherwise opens a
// pending order with a checkout link.
func (s *PaymentService) Checkout(ctx context.Context, userID, courseID uint) (*CheckoutResult, error) {
	if userID == 0 || courseID == 0 {
		return nil, utils.Invalidf("userId and courseId are required")
	}
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	course, err := s.catalog.FindCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.enrollment.IsEnrolled(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, utils.Conflictf("user %d is already enrolled in course %d", userID, courseID)
	}

	if course.IsFree() {
		if _, err := s.enrollment.Enroll(ctx, userID, courseID); err != nil {
			return nil, err
		}
		return &CheckoutResult{Enrolled: true}, nil
	}

	if s.gateway == nil {
		return nil, utils.Invalidf("paid checkout is not available")
	}

	order := &models.Order{
		OrderCode: "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:20]),
		UserID:    userID,
		CourseID:  courseID,
		Amount:    course.Price,
		Status:    models.OrderPending,
	}
	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	url, err := s.gateway.CreateCheckout(ctx, payment.Checkout{
		OrderCode:   order.OrderCode,
		Amount:      order.Amount,
		CourseID:    course.ID,
		CourseTitle: course.Title,
		Customer:    payment.Customer{Name: user.Fullname, Email: user.Email},
	})
	if err != nil {
		s.log.Error("checkout failed", zap.String("order_code", order.OrderCode), zap.Error(err))
		if _, terr := s.orders.Transition(ctx, order.OrderCode, models.OrderCancelled, ""); terr != nil {
			s.log.Error("cancel order failed", zap.String("order_code", order.OrderCode), zap.Error(terr))
		}
		return nil, utils.NewError(utils.KindTransient, "payment gateway unavailable", err)
	}
	if err := s.orders.SetCheckoutURL(ctx, order.OrderCode, url); err != nil {
		return nil, err
	}

	s.log.Info("order created", zap.String("order_code", order.OrderCode), zap.Uint("user_id", userID), zap.Uint("course_id", courseID))
	return &CheckoutResult{OrderCode: order.OrderCode, CheckoutURL: url}, nil
}

// HandleWebhook verifies and applies a gateway notification. Replays and
// notifications for unknown orders are acknowledged without effect.
func (s *PaymentService) HandleWebhook(ctx context.Context, n Notification) (*WebhookResult, error) {
	n.normalize()
	if n.OrderCode == "" || n.ResultCode == "" {
		return nil, utils.Invalidf("orderCode and resultCode are required")
	}
	if !payment.VerifySignature(n.OrderCode, n.ResultCode, n.GrossAmount, s.serverKey, n.Signature) {
		return nil, utils.Unauthorizedf("invalid signature")
	}

	order, err := s.orders.FindOrderByCode(ctx, n.OrderCode)
	if utils.IsKind(err, utils.KindNotFound) {
		s.log.Warn("webhook for unknown order", zap.String("order_code", n.OrderCode))
		return &WebhookResult{Status: "ignored"}, nil
	}
	if err != nil {
		return nil, err
	}

	switch {
	case n.succeeded():
		if n.GrossAmount != "" {
			amount, err := strconv.ParseFloat(n.GrossAmount, 64)
			if err != nil || int64(amount+0.5) != order.Amount {
				return nil, utils.Invalidf("gross amount %q does not match order", n.GrossAmount)
			}
		}
		if _, err := s.orders.Transition(ctx, order.OrderCode, models.OrderPaid, n.TransactionID); err != nil {
			return nil, err
		}
		order, err = s.orders.FindOrderByCode(ctx, order.OrderCode)
		if err != nil {
			return nil, err
		}
		if order.Status != models.OrderPaid {
			return &WebhookResult{Status: "ignored", OrderStatus: order.Status}, nil
		}
		// enrollment is idempotent, so a replay also repairs a failed earlier attempt
		if _, err := s.enrollment.Enroll(ctx, order.UserID, order.CourseID); err != nil {
			return nil, err
		}
		s.log.Info("order paid", zap.String("order_code", order.OrderCode), zap.Uint("user_id", order.UserID))
		return &WebhookResult{Status: "ok", OrderStatus: order.Status, Enrolled: true}, nil

	case n.failed():
		if _, err := s.orders.Transition(ctx, order.OrderCode, models.OrderCancelled, n.TransactionID); err != nil {
			return nil, err
		}
		order, err = s.orders.FindOrderByCode(ctx, order.OrderCode)
		if err != nil {
			return nil, err
		}
		return &WebhookResult{Status: "ok", OrderStatus: order.Status}, nil
	}

	return &WebhookResult{Status: "ignored", OrderStatus: order.Status}, nil
}
