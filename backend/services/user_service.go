package services

import (
	"context"
	"strings"
	"time"

	"learning_portal/backend/config"
	"learning_portal/backend/models"
	"learning_portal/backend/utils"

	"go.uber.org/zap"
)

type Registration struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6"`
	Fullname string `json:"fullname" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

type UserService struct {
	users UserStore
	cfg   *config.Config
	log   *zap.Logger
}

func NewUserService(users UserStore, cfg *config.Config, log *zap.Logger) *UserService {
	return &UserService{users: users, cfg: cfg, log: log}
}

// Register creates a learner account. Role is honoured only when
// allowRole is set (admin-created users).
func (s *UserService) Register(ctx context.Context, in Registration, allowRole bool) (*models.User, error) {
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, utils.NewError(utils.KindInternal, "could not hash password", err)
	}

	role := models.RoleUser
	if allowRole && in.Role != "" {
		role = in.Role
	}
	user := &models.User{
		Username:          strings.TrimSpace(in.Username),
		PasswordHash:      hash,
		Fullname:          in.Fullname,
		Email:             strings.ToLower(strings.TrimSpace(in.Email)),
		Role:              role,
		Status:            "active",
		JoinDate:          time.Now().Format("2006-01-02"),
		EnrolledCourseIDs: []uint{},
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info("user registered", zap.Uint("user_id", user.ID), zap.String("role", role))
	return user, nil
}

// Login checks the credentials and returns a signed token. Unknown user
// and wrong password give the same error.
func (s *UserService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.users.FindUserByUsername(ctx, username)
	if utils.IsKind(err, utils.KindNotFound) {
		return "", nil, utils.Unauthorizedf("invalid credentials")
	}
	if err != nil {
		return "", nil, err
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return "", nil, utils.Unauthorizedf("invalid credentials")
	}

	token, err := s.Token(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *UserService) Token(user *models.User) (string, error) {
	token, err := utils.GenerateJWTToken(user.ID, s.cfg)
	if err != nil {
		return "", utils.NewError(utils.KindInternal, "could not generate token", err)
	}
	return token, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.users.FindUserByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, role string) ([]models.User, error) {
	return s.users.ListUsers(ctx, role)
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	return s.users.DeleteUser(ctx, id)
}
