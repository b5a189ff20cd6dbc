package get_time_options

import (
	getTimeOptions "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/usecase/get_time_options"
)

// TimeOptionsResponse HTTP response model
type TimeOptionsResponse struct {
	TimeOptions        []string `json:"timeOptions"`
	DurationOptions    []int    `json:"durationOptions"`
	EndTime            *string  `json:"endTime,omitempty"`
	BusinessOpen       string   `json:"businessOpen"`
	BusinessClose      string   `json:"businessClose"`
	MinDurationMinutes int      `json:"minDurationMinutes"`
	MaxDurationMinutes int      `json:"maxDurationMinutes"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getTimeOptions.Response) *TimeOptionsResponse {
	options := make([]string, 0, len(resp.TimeOptions))
	for _, ts := range resp.TimeOptions {
		options = append(options, ts.String())
	}

	out := &TimeOptionsResponse{
		TimeOptions:        options,
		DurationOptions:    resp.DurationOptions,
		BusinessOpen:       resp.BusinessOpen.String(),
		BusinessClose:      resp.BusinessClose.String(),
		MinDurationMinutes: int(resp.MinDuration.Minutes()),
		MaxDurationMinutes: int(resp.MaxDuration.Minutes()),
	}
	if resp.EndTime != nil {
		endTime := resp.EndTime.String()
		out.EndTime = &endTime
	}
	return out
}
