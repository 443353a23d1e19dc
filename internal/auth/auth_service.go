package auth

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"time"

	autherrors "workflowhr/internal/auth/errors"
	"workflowhr/internal/company"
	"workflowhr/internal/rbac"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 12 * time.Hour

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (AuthResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// Signup creates the company and its first admin user in one transaction.
func (s *service) Signup(ctx context.Context, req SignupRequest) (AuthResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("signup begin tx failed", zap.Error(err))
		return AuthResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmailExists(ctx, req.Email)
	if err != nil {
		return AuthResponse{}, err
	}
	if exists {
		return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	comp := &company.Company{
		ID:   uuid.New(),
		Name: req.CompanyName,
	}
	if err := qtx.CreateCompany(ctx, comp); err != nil {
		s.logger.Error("signup create company failed", zap.Error(err))
		return AuthResponse{}, err
	}

	admin := &User{
		ID:           uuid.New(),
		CompanyID:    comp.ID,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         rbac.RoleAdmin,
	}
	if err := qtx.CreateUser(ctx, admin); err != nil {
		s.logger.Error("signup create admin failed", zap.Error(err))
		return AuthResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AuthResponse{}, err
	}

	s.logger.Info("company signed up",
		zap.String("company_id", comp.ID.String()),
		zap.String("user_id", admin.ID.String()),
	)

	return s.issueToken(admin)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	user, err := s.repo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, autherrors.ErrInvalidCredentials
		}
		return AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	s.logger.Debug("login success", zap.String("user_id", user.ID.String()))
	return s.issueToken(user)
}

func (s *service) issueToken(user *User) (AuthResponse, error) {
	employeeID := ""
	if user.EmployeeID != nil {
		employeeID = user.EmployeeID.String()
	}

	claims := jwt.MapClaims{
		"user_id":     user.ID.String(),
		"employee_id": employeeID,
		"company_id":  user.CompanyID.String(),
		"role":        user.Role,
		"exp":         time.Now().Add(tokenTTL).Unix(),
		"iat":         time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return AuthResponse{}, err
	}

	return AuthResponse{
		Token:     signed,
		UserID:    user.ID.String(),
		CompanyID: user.CompanyID.String(),
		Role:      user.Role,
	}, nil
}
