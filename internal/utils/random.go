package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/sweet-solutions/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var firstNames = []string{
	"Sarah", "Mike", "Emma", "Jake", "Lily", "Tom", "Anna", "Chris",
	"Mia", "Ben", "Zoe", "Luke", "Grace", "Sam", "Ella", "Ryan",
}
var lastNames = []string{
	"Johnson", "Chen", "Rodriguez", "Thompson", "Park", "Wilson",
	"Martinez", "Davis", "Nguyen", "Brown", "Garcia", "Miller",
}

func GenerateRandomName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

func GenerateEmailFromName(name string, domainName string) string {
	parts := strings.Fields(strings.ToLower(name))
	local := strings.Join(parts, ".")
	return fmt.Sprintf("%s%d@%s", local, rand.Intn(100), domainName)
}

var shopRoles = []string{"Scooper", "Shift Lead", "Cake Decorator", "Cashier"}

func GenerateRandomShopRole() string {
	return shopRoles[rand.Intn(len(shopRoles))]
}

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// GenerateRandomAvailability picks a Fisher-Yates subset of weekdays and
// gives each a plausible store window.
func GenerateRandomAvailability() []domain.AvailabilitySlot {
	days := append([]string{}, weekdays...)
	for i := len(days) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		days[i], days[j] = days[j], days[i]
	}
	n := rand.Intn(4) + 2

	slots := make([]domain.AvailabilitySlot, 0, n)
	for _, day := range days[:n] {
		startHour := rand.Intn(5) + 8 // 08:00-12:00
		length := rand.Intn(5) + 4    // 4-8 hours
		slots = append(slots, domain.AvailabilitySlot{
			Day:       day,
			StartTime: domain.TimeOfDay(startHour * 60),
			EndTime:   domain.TimeOfDay((startHour + length) * 60),
		})
	}
	return slots
}

func GenerateRandomEmployee(emailDomainName string) *domain.Employee {
	name := GenerateRandomName()
	return &domain.Employee{
		Name:         name,
		Email:        GenerateEmailFromName(name, emailDomainName),
		Phone:        fmt.Sprintf("555-%04d", rand.Intn(10000)),
		Role:         GenerateRandomShopRole(),
		HourlyRate:   float64(rand.Intn(10)+12) + 0.5*float64(rand.Intn(2)),
		HoursPerWeek: float64(rand.Intn(5)*5 + 20),
		IsActive:     true,
		HireDate:     domain.Date{Time: time.Now().UTC().AddDate(0, -rand.Intn(36), 0)},
		Availability: GenerateRandomAvailability(),
	}
}

var shiftStatuses = []domain.ShiftStatus{
	domain.ShiftStatusScheduled,
	domain.ShiftStatusCompleted,
	domain.ShiftStatusCancelled,
}

// GenerateRandomShift produces a shift on the given date somewhere inside
// store hours. Statuses are weighted toward completed so seeded months have
// payroll-relevant data.
func GenerateRandomShift(employee *domain.Employee, date domain.Date, createdBy int64) *domain.Shift {
	startHour := rand.Intn(8) + 8 // 08:00-16:00
	length := rand.Intn(5) + 4    // 4-8 hours

	status := domain.ShiftStatusCompleted
	if rand.Intn(4) == 0 {
		status = shiftStatuses[rand.Intn(len(shiftStatuses))]
	}

	return &domain.Shift{
		EmployeeID:   employee.ID,
		EmployeeName: employee.Name,
		Date:         date,
		StartTime:    domain.TimeOfDay(startHour * 60),
		EndTime:      domain.TimeOfDay((startHour + length) * 60),
		Role:         employee.Role,
		Status:       status,
		CreatedBy:    createdBy,
	}
}

func GenerateRandomUser(name string, email string, role domain.Role, password string) (*domain.User, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(passwordHash),
		Role:         role,
		IsActive:     true,
	}, nil
}
