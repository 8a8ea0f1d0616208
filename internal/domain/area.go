package domain

import (
	"fmt"
	"time"
)

// LeadTimeUnit is the unit of the minimum advance notice
type LeadTimeUnit string

const (
	LeadTimeDays   LeadTimeUnit = "days"
	LeadTimeWeeks  LeadTimeUnit = "weeks"
	LeadTimeMonths LeadTimeUnit = "months"
)

// LeadTime minimum advance notice required before a booking starts
type LeadTime struct {
	Amount int
	Unit   LeadTimeUnit
}

// EarliestStart returns the first instant a booking may start when requested at now
func (l LeadTime) EarliestStart(now time.Time) (time.Time, error) {
	if l.Amount < 0 {
		return time.Time{}, fmt.Errorf("lead time amount must not be negative, got %d", l.Amount)
	}
	switch l.Unit {
	case LeadTimeDays:
		return now.AddDate(0, 0, l.Amount), nil
	case LeadTimeWeeks:
		return now.AddDate(0, 0, 7*l.Amount), nil
	case LeadTimeMonths:
		return now.AddDate(0, l.Amount, 0), nil
	default:
		return time.Time{}, fmt.Errorf("unknown lead time unit %q", l.Unit)
	}
}

// AreaConfig capacity configuration of a bookable coworking area
// Owned by the spaces service, read-only here
type AreaConfig struct {
	AreaID                    int64
	SpaceID                   int64
	MaxCapacity               *int // nil = unlimited
	AutomaticBookingEnabled   bool
	RequestApprovalAtCapacity bool
	LeadTime                  *LeadTime // nil = no minimum notice
	HostIDs                   []int64
}

// HasCapacityLimit returns true if the area has a finite capacity
func (c *AreaConfig) HasCapacityLimit() bool {
	return c.MaxCapacity != nil
}

// IsHost returns true if the user manages the area
func (c *AreaConfig) IsHost(userID int64) bool {
	for _, id := range c.HostIDs {
		if id == userID {
			return true
		}
	}
	return false
}
