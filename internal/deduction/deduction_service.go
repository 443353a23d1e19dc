package deduction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	deductionerrors "workflowhr/internal/deduction/errors"
	"workflowhr/internal/shared/apperror"
)

//go:generate mockgen -source=deduction_service.go -destination=mock/deduction_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateDeductionRequest) (DeductionResponse, error)
	GetAll(ctx context.Context, companyID string) ([]DeductionResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateDeductionRequest) (DeductionResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("deduction.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("deduction.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func parseAmount(kind, raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil || amount.IsNegative() {
		return decimal.Zero, deductionerrors.ErrInvalidAmount
	}
	if kind == KindPercent && amount.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.Zero, deductionerrors.ErrInvalidAmount
	}
	return amount, nil
}

func (s *service) Create(ctx context.Context, companyID string, req CreateDeductionRequest) (DeductionResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return DeductionResponse{}, apperror.ErrInvalidInput
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return DeductionResponse{}, deductionerrors.ErrInvalidEmployeeID
	}
	amount, err := parseAmount(req.Kind, req.Amount)
	if err != nil {
		return DeductionResponse{}, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DeductionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	d := &FixedDeduction{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		EmployeeID: employeeUUID,
		Name:       req.Name,
		Kind:       req.Kind,
		Amount:     amount,
		IsActive:   active,
	}
	if err := qtx.Create(ctx, d); err != nil {
		s.logger.Error("create deduction persist failed", zap.Error(err))
		return DeductionResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return DeductionResponse{}, err
	}

	s.logger.Info("deduction created",
		zap.String("deduction_id", d.ID.String()),
		zap.String("employee_id", d.EmployeeID.String()),
		zap.String("kind", d.Kind),
	)
	return mapToResponse(*d), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]DeductionResponse, error) {
	deductions, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]DeductionResponse, len(deductions))
	for i, d := range deductions {
		resp[i] = mapToResponse(d)
	}
	return resp, nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateDeductionRequest) (DeductionResponse, error) {
	amount, err := parseAmount(req.Kind, req.Amount)
	if err != nil {
		return DeductionResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DeductionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	d, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DeductionResponse{}, deductionerrors.ErrDeductionNotFound
		}
		return DeductionResponse{}, err
	}

	d.Name = req.Name
	d.Kind = req.Kind
	d.Amount = amount
	d.IsActive = *req.IsActive

	if err := qtx.Update(ctx, d); err != nil {
		s.logger.Error("update deduction persist failed",
			zap.String("deduction_id", id),
			zap.Error(err),
		)
		return DeductionResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return DeductionResponse{}, err
	}

	return mapToResponse(*d), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByIDAndCompany(ctx, companyID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return deductionerrors.ErrDeductionNotFound
		}
		return err
	}
	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}
	return tx.Commit()
}

func mapToResponse(d FixedDeduction) DeductionResponse {
	return DeductionResponse{
		ID:         d.ID.String(),
		EmployeeID: d.EmployeeID.String(),
		Name:       d.Name,
		Kind:       d.Kind,
		Amount:     d.Amount.String(),
		IsActive:   d.IsActive,
	}
}
