package domain

// Business validation constants
const (
	MinGuestCount               = 1
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxRuleNameLength           = 200
)

// Time format constants
const (
	TimeFormat     = "15:04:05"             // HH:MM:SS
	DateFormat     = "2006-01-02"           // YYYY-MM-DD
	DateTimeFormat = "2006-01-02T15:04:05Z" // ISO-8601, always UTC
)

// ActiveStatuses статусы, которые занимают вместимость зоны
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses терминальные статусы, не учитываются при подсчёте занятости
var InactiveStatuses = []BookingStatus{
	StatusRejected,
	StatusCancelled,
	StatusCompleted,
}
