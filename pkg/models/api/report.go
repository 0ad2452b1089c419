package api

import "time"

// ValidationCheck is the wire shape of a single recorded check.
type ValidationCheck struct {
	Category  string                 `json:"category"`
	Name      string                 `json:"name"`
	Status    string                 `json:"status"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details"`
	Timestamp time.Time              `json:"timestamp"`
}

// ValidationSummary mirrors the aggregate statistics of one run.
type ValidationSummary struct {
	TotalChecks int     `json:"total_checks"`
	Passed      int     `json:"passed"`
	Failed      int     `json:"failed"`
	Warnings    int     `json:"warnings"`
	SuccessRate float64 `json:"success_rate"`
}

// ValidationInfo carries run metadata for downstream tooling.
type ValidationInfo struct {
	Timestamp   time.Time         `json:"timestamp"`
	Version     string            `json:"version"`
	Environment map[string]string `json:"environment"`
	AzureInfo   AzureInfo         `json:"azure_info"`
}

// AzureInfo identifies the subscription the run targeted.
type AzureInfo struct {
	SubscriptionID   string `json:"subscription_id"`
	SubscriptionName string `json:"subscription_name,omitempty"`
	TenantID         string `json:"tenant_id"`
	User             string `json:"user,omitempty"`
}

// ValidationReport is the durable artifact written at the end of a
// validation run. Its shape is parsed by external tooling and must stay
// aligned with the in-memory validation result.
type ValidationReport struct {
	ValidationInfo ValidationInfo    `json:"validation_info"`
	Summary        ValidationSummary `json:"summary"`
	Checks         []ValidationCheck `json:"checks"`
	Successes      []ValidationCheck `json:"successes"`
	Warnings       []ValidationCheck `json:"warnings"`
	Issues         []ValidationCheck `json:"issues"`
}

// DeployedResource describes one resource in the deployment summary.
type DeployedResource struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Purpose string `json:"purpose"`
	State   string `json:"state"`
	Error   string `json:"error,omitempty"`
}

// DeploymentInfo carries metadata about a provisioning run.
type DeploymentInfo struct {
	Timestamp time.Time `json:"timestamp"`
	Tool      string    `json:"tool"`
	Version   string    `json:"version"`
}

// DeploymentSummary is the durable artifact written after provisioning.
type DeploymentSummary struct {
	DeploymentInfo DeploymentInfo              `json:"deployment_info"`
	AzureInfo      AzureInfo                   `json:"azure_info"`
	ResourceGroup  string                      `json:"resource_group"`
	Location       string                      `json:"location"`
	Resources      map[string]DeployedResource `json:"resources"`
}
