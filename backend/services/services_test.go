package services

import (
	"context"
	"errors"
	"testing"

	"learning_portal/backend/payment"
	"learning_portal/backend/repository"
	"learning_portal/backend/testutil"

	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

// fakeGateway records checkouts and hands out a fixed URL.
type fakeGateway struct {
	calls []payment.Checkout
	err   error
}

func (g *fakeGateway) CreateCheckout(ctx context.Context, checkout payment.Checkout) (string, error) {
	g.calls = append(g.calls, checkout)
	if g.err != nil {
		return "", g.err
	}
	return "https://pay.example.com/" + checkout.OrderCode, nil
}

var errGatewayDown = errors.New("gateway down")

const testServerKey = "server-key"

type env struct {
	db          *gorm.DB
	catalogRepo *repository.CatalogRepository
	progress    *ProgressService
	quizzes     *QuizService
	enrollment  *EnrollmentService
	catalog     *CatalogService
	users       *UserService
	payments    *PaymentService
	gateway     *fakeGateway
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db, cfg := testutil.NewDB(t)
	log := zaptest.NewLogger(t)

	catalogRepo := repository.NewCatalogRepository(db, cfg.StoreTimeout)
	userRepo := repository.NewUserRepository(db, cfg.StoreTimeout)
	enrollmentRepo := repository.NewEnrollmentRepository(db, cfg.StoreTimeout)
	progressRepo := repository.NewProgressRepository(db, cfg.StoreTimeout)
	orderRepo := repository.NewOrderRepository(db, cfg.StoreTimeout)

	e := &env{db: db, catalogRepo: catalogRepo, gateway: &fakeGateway{}}
	e.progress = NewProgressService(catalogRepo, progressRepo, log)
	e.quizzes = NewQuizService(catalogRepo, e.progress, log)
	e.enrollment = NewEnrollmentService(catalogRepo, userRepo, enrollmentRepo, log)
	e.catalog = NewCatalogService(catalogRepo, e.progress, log)
	e.users = NewUserService(userRepo, cfg, log)
	e.payments = NewPaymentService(catalogRepo, userRepo, orderRepo, e.enrollment, e.gateway, testServerKey, log)
	return e
}
