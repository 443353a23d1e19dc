package leaverequest

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"workflowhr/internal/employee"
	"workflowhr/internal/leavebalance"
	requesterrors "workflowhr/internal/leaverequest/errors"
	"workflowhr/internal/leavetype"
	"workflowhr/internal/messaging/kafka"
)

// EmployeeSource is the slice of the employee repository the workflow needs.
type EmployeeSource interface {
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error)
}

// LeaveTypeSource resolves catalog entries for paid/unpaid classification.
type LeaveTypeSource interface {
	FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error)
}

// DayCounter sizes requests against the company working days calendar.
type DayCounter interface {
	WorkingDaysBetween(ctx context.Context, companyID string, start, end time.Time) int
}

// BalanceLedger is the slice of the ledger the workflow touches: rows are
// materialized at submission, usage is charged exactly once at HR approval.
type BalanceLedger interface {
	GetOrCreateBalances(ctx context.Context, companyID, employeeID string, year int) ([]leavebalance.BalanceResponse, error)
	RecordUsage(ctx context.Context, companyID, employeeID, leaveTypeID string, year, days int) error
}

// SlipFlagger marks already generated salary slips as needing recalculation
// when unpaid leave is approved after the fact.
type SlipFlagger interface {
	FlagRecalculation(ctx context.Context, companyID, employeeID string, month, year int) error
}

//go:generate mockgen -source=leave_request_service.go -destination=mock/leave_request_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, companyID, actorID string, req SubmitLeaveRequest) (LeaveRequestResponse, error)
	GetAll(ctx context.Context, companyID string, filter ListFilter) ([]LeaveRequestResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LeaveRequestResponse, error)
	DecideByTeamLead(ctx context.Context, companyID, actorID, id string, req DecisionRequest) (LeaveRequestResponse, error)
	DecideByHR(ctx context.Context, companyID, actorID, id string, req DecisionRequest) (LeaveRequestResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	employees  EmployeeSource
	leaveTypes LeaveTypeSource
	calendar   DayCounter
	ledger     BalanceLedger
	outbox     kafka.OutboxRepository
	slips      SlipFlagger
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees EmployeeSource,
	leaveTypes LeaveTypeSource,
	calendar DayCounter,
	ledger BalanceLedger,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, employees, leaveTypes, calendar, ledger, nil, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	employees EmployeeSource,
	leaveTypes LeaveTypeSource,
	calendar DayCounter,
	ledger BalanceLedger,
	outbox kafka.OutboxRepository,
	slips SlipFlagger,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		employees:  employees,
		leaveTypes: leaveTypes,
		calendar:   calendar,
		ledger:     ledger,
		outbox:     outbox,
		slips:      slips,
		logger:     l,
	}
}

func (s *service) Submit(ctx context.Context, companyID, actorID string, req SubmitLeaveRequest) (LeaveRequestResponse, error) {
	s.logger.Debug("submit leave request",
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LeaveRequestResponse{}, requesterrors.ErrInvalidEmployeeID
	}
	leaveTypeUUID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return LeaveRequestResponse{}, requesterrors.ErrInvalidLeaveTypeID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveRequestResponse{}, requesterrors.ErrInvalidDateRange
	}
	// All validation runs before any write, so a rejected submission leaves
	// no rows behind.
	if startDate.Before(todayUTC()) {
		return LeaveRequestResponse{}, requesterrors.ErrStartDateInPast
	}

	emp, err := s.employees.FindByIDAndCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, requesterrors.ErrEmployeeNotFound
		}
		return LeaveRequestResponse{}, err
	}

	lt, err := s.leaveTypes.FindByID(ctx, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, requesterrors.ErrLeaveTypeNotFound
		}
		return LeaveRequestResponse{}, err
	}

	totalDays := s.calendar.WorkingDaysBetween(ctx, companyID, startDate, endDate)
	if totalDays == 0 {
		return LeaveRequestResponse{}, requesterrors.ErrNoWorkingDays
	}

	// Materialize the ledger for the leave year. Submission never deducts;
	// usage is charged only when HR approves.
	if _, err := s.ledger.GetOrCreateBalances(ctx, companyID, req.EmployeeID, startDate.Year()); err != nil {
		return LeaveRequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l := &LeaveRequest{
		ID:          uuid.New(),
		CompanyID:   emp.CompanyID,
		EmployeeID:  employeeUUID,
		LeaveTypeID: leaveTypeUUID,
		StartDate:   startDate,
		EndDate:     endDate,
		TotalDays:   totalDays,
		Reason:      req.Reason,
		Status:      StatusPending,
		TeamLeadID:  emp.TeamLeadID,
	}
	if emp.CreatedBy != uuid.Nil {
		hrID := emp.CreatedBy
		l.HRID = &hrID
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if s.outbox != nil {
		if err := publishSubmitted(ctx, s.outbox.WithTx(tx), l); err != nil {
			s.logger.Error("submit leave outbox write failed", zap.Error(err))
			return LeaveRequestResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("leave request submitted",
		zap.String("request_id", l.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("total_days", totalDays),
		zap.Bool("is_paid", lt.IsPaid),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter ListFilter) ([]LeaveRequestResponse, error) {
	requests, err := s.repo.FindAllByCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (LeaveRequestResponse, error) {
	l, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, requesterrors.ErrRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) DecideByTeamLead(ctx context.Context, companyID, actorID, id string, req DecisionRequest) (LeaveRequestResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveRequestResponse{}, requesterrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, requesterrors.ErrRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}
	if l.isTerminal() {
		return LeaveRequestResponse{}, requesterrors.ErrAlreadyDecided
	}
	if l.Status != StatusPending {
		return LeaveRequestResponse{}, requesterrors.ErrNotDecidableByLead
	}
	// Only the lead snapshotted at submission may act. Requests without a
	// lead go straight to HR.
	if l.TeamLeadID == nil || *l.TeamLeadID != actorUUID {
		return LeaveRequestResponse{}, requesterrors.ErrNotAssignedLead
	}

	now := time.Now().UTC()
	l.LeadDecidedBy = &actorUUID
	l.LeadDecidedAt = &now

	switch req.Decision {
	case DecisionApprove:
		l.Status = StatusApprovedByTeamLead
	case DecisionReject:
		if req.Remarks == "" {
			return LeaveRequestResponse{}, requesterrors.ErrRemarksRequired
		}
		l.Status = StatusRejected
		l.Remarks = &req.Remarks
	default:
		return LeaveRequestResponse{}, requesterrors.ErrInvalidDecision
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("team lead decision persist failed",
			zap.String("request_id", id),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}

	if s.outbox != nil && l.Status == StatusRejected {
		if err := publishDecided(ctx, s.outbox.WithTx(tx), l); err != nil {
			return LeaveRequestResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("team lead decision recorded",
		zap.String("request_id", id),
		zap.String("status", l.Status),
	)
	return mapToResponse(*l), nil
}

func (s *service) DecideByHR(ctx context.Context, companyID, actorID, id string, req DecisionRequest) (LeaveRequestResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveRequestResponse{}, requesterrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, requesterrors.ErrRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}
	// Terminal statuses never flip. A second approval or rejection is a
	// conflict, which also keeps ledger usage single-shot.
	if l.isTerminal() {
		return LeaveRequestResponse{}, requesterrors.ErrAlreadyDecided
	}

	now := time.Now().UTC()
	l.HRDecidedBy = &actorUUID
	l.HRDecidedAt = &now

	switch req.Decision {
	case DecisionApprove:
		l.Status = StatusApprovedByHR
	case DecisionReject:
		if req.Remarks == "" {
			return LeaveRequestResponse{}, requesterrors.ErrRemarksRequired
		}
		l.Status = StatusRejected
		l.Remarks = &req.Remarks
	default:
		return LeaveRequestResponse{}, requesterrors.ErrInvalidDecision
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("hr decision persist failed",
			zap.String("request_id", id),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}

	if s.outbox != nil {
		if err := publishDecided(ctx, s.outbox.WithTx(tx), l); err != nil {
			return LeaveRequestResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return LeaveRequestResponse{}, err
	}

	if l.Status == StatusApprovedByHR {
		if err := s.applyApproval(ctx, l); err != nil {
			return LeaveRequestResponse{}, err
		}
	}

	s.logger.Info("hr decision recorded",
		zap.String("request_id", id),
		zap.String("status", l.Status),
	)
	return mapToResponse(*l), nil
}

// applyApproval charges the ledger and flags affected salary slips. It runs
// after the status commit: the terminal status makes a second approval a
// conflict, so usage cannot be charged twice.
func (s *service) applyApproval(ctx context.Context, l *LeaveRequest) error {
	err := s.ledger.RecordUsage(
		ctx,
		l.CompanyID.String(),
		l.EmployeeID.String(),
		l.LeaveTypeID.String(),
		l.StartDate.Year(),
		l.TotalDays,
	)
	if err != nil {
		s.logger.Error("approved leave usage not charged",
			zap.String("request_id", l.ID.String()),
			zap.Error(err),
		)
		return err
	}

	lt, err := s.leaveTypes.FindByID(ctx, l.LeaveTypeID.String())
	if err != nil {
		s.logger.Warn("leave type lookup failed after approval",
			zap.String("request_id", l.ID.String()),
			zap.Error(err),
		)
		return nil
	}
	if lt.IsPaid || s.slips == nil {
		return nil
	}

	for _, m := range monthsSpanned(l.StartDate, l.EndDate) {
		if err := s.slips.FlagRecalculation(ctx, l.CompanyID.String(), l.EmployeeID.String(), m.month, m.year); err != nil {
			s.logger.Warn("slip recalculation flag failed",
				zap.String("request_id", l.ID.String()),
				zap.Int("month", m.month),
				zap.Int("year", m.year),
				zap.Error(err),
			)
		}
	}
	return nil
}

type monthRef struct {
	month int
	year  int
}

func monthsSpanned(start, end time.Time) []monthRef {
	var months []monthRef
	cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cursor.After(last) {
		months = append(months, monthRef{month: int(cursor.Month()), year: cursor.Year()})
		cursor = cursor.AddDate(0, 1, 0)
	}
	return months
}

func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, requesterrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:          l.ID.String(),
		EmployeeID:  l.EmployeeID.String(),
		LeaveTypeID: l.LeaveTypeID.String(),
		StartDate:   l.StartDate.Format("2006-01-02"),
		EndDate:     l.EndDate.Format("2006-01-02"),
		TotalDays:   l.TotalDays,
		Reason:      l.Reason,
		Status:      l.Status,
		Remarks:     l.Remarks,
	}
	if l.TeamLeadID != nil {
		v := l.TeamLeadID.String()
		resp.TeamLeadID = &v
	}
	if l.HRID != nil {
		v := l.HRID.String()
		resp.HRID = &v
	}
	if l.LeadDecidedBy != nil {
		v := l.LeadDecidedBy.String()
		resp.LeadDecidedBy = &v
	}
	if l.LeadDecidedAt != nil {
		v := l.LeadDecidedAt.Format(time.RFC3339)
		resp.LeadDecidedAt = &v
	}
	if l.HRDecidedBy != nil {
		v := l.HRDecidedBy.String()
		resp.HRDecidedBy = &v
	}
	if l.HRDecidedAt != nil {
		v := l.HRDecidedAt.Format(time.RFC3339)
		resp.HRDecidedAt = &v
	}
	return resp
}

func mapToListResponse(requests []LeaveRequest) []LeaveRequestResponse {
	resp := make([]LeaveRequestResponse, len(requests))
	for i, l := range requests {
		resp[i] = mapToResponse(l)
	}
	return resp
}
