package calendarevent

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	calendareventerrors "workflowhr/internal/calendarevent/errors"
	"workflowhr/internal/shared/apperror"
)

//go:generate mockgen -source=calendar_event_service.go -destination=mock/calendar_event_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateEventRequest) (EventResponse, error)
	GetAll(ctx context.Context, companyID string, from, to *time.Time) ([]EventResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateEventRequest) (EventResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("calendarevent.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("calendarevent.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateEventRequest) (EventResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return EventResponse{}, apperror.ErrInvalidInput
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return EventResponse{}, apperror.ErrInvalidInput
	}
	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return EventResponse{}, calendareventerrors.ErrInvalidEventDate
	}

	e := &CalendarEvent{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		Title:       req.Title,
		Description: req.Description,
		EventDate:   eventDate,
		IsHoliday:   req.IsHoliday,
		CreatedBy:   actorUUID,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.Error("create calendar event persist failed", zap.Error(err))
		return EventResponse{}, err
	}

	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, from, to *time.Time) ([]EventResponse, error) {
	events, err := s.repo.FindAllByCompany(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}

	resp := make([]EventResponse, len(events))
	for i, e := range events {
		resp[i] = mapToResponse(e)
	}
	return resp, nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateEventRequest) (EventResponse, error) {
	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return EventResponse{}, calendareventerrors.ErrInvalidEventDate
	}

	e, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EventResponse{}, calendareventerrors.ErrEventNotFound
		}
		return EventResponse{}, err
	}

	e.Title = req.Title
	e.Description = req.Description
	e.EventDate = eventDate
	e.IsHoliday = req.IsHoliday

	if err := s.repo.Update(ctx, e); err != nil {
		return EventResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	if _, err := s.repo.FindByIDAndCompany(ctx, companyID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return calendareventerrors.ErrEventNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, companyID, id)
}

func mapToResponse(e CalendarEvent) EventResponse {
	return EventResponse{
		ID:          e.ID.String(),
		Title:       e.Title,
		Description: e.Description,
		EventDate:   e.EventDate.Format("2006-01-02"),
		IsHoliday:   e.IsHoliday,
	}
}
