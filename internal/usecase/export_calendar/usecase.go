package export_calendar

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/infra/calendar"
)

// UseCase выгрузка записей сотрудника в формате iCalendar
type UseCase struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	feedDomain      string
	logger          Logger
	now             func() time.Time
}

// NewUseCase создает новый экземпляр use case
// feedDomain используется в UID событий, чтобы они были стабильны между выгрузками
func NewUseCase(appointmentRepo AppointmentRepository, txManager TransactionManager, feedDomain string, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		feedDomain:      feedDomain,
		logger:          logger,
		now:             time.Now,
	}
}

// Execute формирует .ics файл с записями сотрудника за период
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ExportCalendar: salon=%s, resource=%s, from=%s, to=%s",
		req.SalonID, req.ResourceID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ExportCalendar: validation failed: %v", err)
		return nil, err
	}

	filter := domain.AppointmentsFilter{
		SalonID:          req.SalonID,
		ResourceID:       &req.ResourceID,
		From:             &req.From,
		To:               &req.To,
		IncludeCancelled: req.IncludeCancelled,
	}

	var appointments []*domain.Appointment
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		appointments, err = uc.appointmentRepo.List(txCtx, filter)
		return err
	})
	if err != nil {
		uc.logger.Error("ExportCalendar: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %w", ErrInternal, err)
	}

	feed := calendar.Feed{
		Name:        fmt.Sprintf("Agenda %s", req.ResourceID),
		Domain:      uc.feedDomain,
		GeneratedAt: uc.now(),
	}

	var buf bytes.Buffer
	if err := calendar.Encode(&buf, feed, appointments); err != nil {
		uc.logger.Error("ExportCalendar: failed to encode calendar: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	uc.logger.Info("ExportCalendar: exported %d appointments for resource=%s", len(appointments), req.ResourceID)

	return &Response{
		FileName: fmt.Sprintf("%s-%s.ics", req.ResourceID, req.From.Format(domain.DateFormat)),
		Content:  buf.Bytes(),
		Count:    len(appointments),
	}, nil
}
