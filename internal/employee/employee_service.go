package employee

import (
	"context"
	"database/sql"
	"time"

	employeeerrors "workflowhr/internal/employee/errors"
	"workflowhr/internal/messaging/kafka"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewServiceWithOutbox(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, logger: l}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateEmployeeRequest) (EmployeeResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	createdByUUID, err := uuid.Parse(actorID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	joiningDate, err := time.Parse("2006-01-02", req.JoiningDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidJoiningDate
	}

	salary, err := decimal.NewFromString(req.Salary)
	if err != nil || salary.IsNegative() {
		return EmployeeResponse{}, employeeerrors.ErrInvalidSalary
	}

	var teamLeadID *uuid.UUID
	if req.TeamLeadID != nil && *req.TeamLeadID != "" {
		parsed, err := uuid.Parse(*req.TeamLeadID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidTeamLeadID
		}
		teamLeadID = &parsed
	}

	e := &Employee{
		ID:           uuid.New(),
		CompanyID:    companyUUID,
		FullName:     req.FullName,
		Email:        req.Email,
		JoiningDate:  joiningDate,
		Salary:       salary,
		LeaveBalance: req.LeaveBalance,
		TeamLeadID:   teamLeadID,
		CreatedBy:    createdByUUID,
	}

	if err := qtx.Create(ctx, e); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := publishEmployeeCreated(ctx, s.outbox.WithTx(tx), e); err != nil {
		s.logger.Error("create employee outbox failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.logger.Info("employee created",
		zap.String("employee_id", e.ID.String()),
		zap.String("company_id", companyID),
	)
	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(employees), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error) {
	e, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	salary, err := decimal.NewFromString(req.Salary)
	if err != nil || salary.IsNegative() {
		return EmployeeResponse{}, employeeerrors.ErrInvalidSalary
	}

	var teamLeadID *uuid.UUID
	if req.TeamLeadID != nil && *req.TeamLeadID != "" {
		parsed, err := uuid.Parse(*req.TeamLeadID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidTeamLeadID
		}
		teamLeadID = &parsed
	}

	e.FullName = req.FullName
	e.Salary = salary
	e.LeaveBalance = req.LeaveBalance
	e.TeamLeadID = teamLeadID

	if err := qtx.Update(ctx, e); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	return mapToResponse(*e), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}
	return tx.Commit()
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:           e.ID.String(),
		CompanyID:    e.CompanyID.String(),
		FullName:     e.FullName,
		Email:        e.Email,
		JoiningDate:  e.JoiningDate.Format("2006-01-02"),
		Salary:       e.Salary.String(),
		LeaveBalance: e.LeaveBalance,
		CreatedBy:    e.CreatedBy.String(),
	}
	if e.TeamLeadID != nil {
		v := e.TeamLeadID.String()
		resp.TeamLeadID = &v
	}
	return resp
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}
	return resp
}
