package domain

import "time"

// CheckStatus is the closed set of validation check outcomes.
type CheckStatus string

const (
	StatusPass CheckStatus = "PASS"
	StatusFail CheckStatus = "FAIL"
	StatusWarn CheckStatus = "WARN"
)

// Valid reports whether s is one of PASS, FAIL or WARN.
func (s CheckStatus) Valid() bool {
	switch s {
	case StatusPass, StatusFail, StatusWarn:
		return true
	}
	return false
}

// ValidationCheck is one atomic assertion about deployed state.
type ValidationCheck struct {
	Category  string
	Name      string
	Status    CheckStatus
	Message   string
	Details   map[string]interface{}
	Timestamp time.Time
}

// ValidationSummary holds the aggregate statistics for one validation run.
type ValidationSummary struct {
	TotalChecks int
	Passed      int
	Failed      int
	Warnings    int
	SuccessRate float64
}

// RoleAssignmentRequest binds a principal to a role definition at a scope.
// The idempotency key is (Scope, PrincipalID, RoleDefinitionID).
type RoleAssignmentRequest struct {
	Scope            string
	PrincipalID      string
	RoleDefinitionID string
	PrincipalType    string
}

// RoleAssignmentState is the outcome of an EnsureRole call.
type RoleAssignmentState string

const (
	RoleAssigned        RoleAssignmentState = "Assigned"
	RoleAlreadyAssigned RoleAssignmentState = "AlreadyAssigned"
	RoleAssignFailed    RoleAssignmentState = "Failed"
)
