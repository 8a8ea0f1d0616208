package domain

import "time"

// Availability occupancy snapshot of an area for a requested window
type Availability struct {
	AreaID      int64
	StartAt     time.Time
	EndAt       time.Time
	ActiveCount int
	MaxCapacity *int // nil = unlimited
}

// RemainingSpots returns free capacity, nil when the area is unlimited
func (a *Availability) RemainingSpots() *int {
	if a.MaxCapacity == nil {
		return nil
	}
	remaining := *a.MaxCapacity - a.ActiveCount
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}

// IsFull returns true if there is no capacity left in the window
func (a *Availability) IsFull() bool {
	remaining := a.RemainingSpots()
	return remaining != nil && *remaining == 0
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (a *Availability) OccupancyRate() float64 {
	if a.MaxCapacity == nil || *a.MaxCapacity == 0 {
		return 0
	}
	rate := float64(a.ActiveCount) / float64(*a.MaxCapacity) * 100
	if rate > 100 {
		return 100
	}
	return rate
}
