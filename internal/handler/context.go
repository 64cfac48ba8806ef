package handler

type ContextKey string

var (
	UserCtx         ContextKey = "user"
	EmployeeCtx     ContextKey = "employee"
	ShiftCtx        ContextKey = "shift"
	RequestCtx      ContextKey = "request"
	PayrollEntryCtx ContextKey = "payrollEntry"
)
