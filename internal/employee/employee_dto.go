package employee

type CreateEmployeeRequest struct {
	FullName           string `json:"full_name" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	SchedulePolicyCode string `json:"schedule_policy_code" binding:"required"`
}

type UpdateEmployeeRequest struct {
	FullName           string `json:"full_name" binding:"required"`
	SchedulePolicyCode string `json:"schedule_policy_code" binding:"required"`
}

type EmployeeResponse struct {
	ID                 string `json:"id"`
	FullName           string `json:"full_name"`
	Email              string `json:"email"`
	SchedulePolicyCode string `json:"schedule_policy_code"`
}
