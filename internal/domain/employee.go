package domain

import "time"

// AvailabilitySlot is one recurring window an employee can work. Day is a
// lowercase weekday name ("monday" .. "sunday").
type AvailabilitySlot struct {
	Day       string    `json:"day"`
	StartTime TimeOfDay `json:"startTime"`
	EndTime   TimeOfDay `json:"endTime"`
}

type Employee struct {
	ID           int64              `json:"id"`
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	Phone        string             `json:"phone"`
	Role         string             `json:"role"` // free-text label, e.g. "Scooper", "Store Manager"
	HourlyRate   float64            `json:"hourlyRate"`
	HoursPerWeek float64            `json:"hoursPerWeek"`
	IsActive     bool               `json:"isActive"`
	HireDate     Date               `json:"hireDate"`
	Availability []AvailabilitySlot `json:"availability"`
	CreatedAt    time.Time          `json:"createdAt"`
	Version      int32              `json:"-"`
}
