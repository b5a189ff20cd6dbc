package export_calendar

import (
	"context"

	exportCalendar "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/usecase/export_calendar"
)

type ExportCalendarUseCase interface {
	Execute(ctx context.Context, req *exportCalendar.Request) (*exportCalendar.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
