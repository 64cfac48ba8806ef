package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type EmployeeWelcomeMailData struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	HireDate string `json:"hireDate"`
}

type RequestReviewedMailData struct {
	EmployeeName string `json:"employeeName"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Decision     string `json:"decision"`
	ReviewNotes  string `json:"reviewNotes"`
}
