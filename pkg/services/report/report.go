package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/de-tools/foundry-forge/pkg/models/api"
	"github.com/de-tools/foundry-forge/pkg/models/domain"
	"github.com/de-tools/foundry-forge/pkg/services/validate"
)

const (
	// Version is stamped into every artifact for downstream tooling.
	Version = "1.0.0"

	DefaultValidationFile = "ai_foundry_validation_report.json"
	DefaultDeploymentFile = "ai_foundry_deployment_summary.json"
)

// resourcePurposes maps each resource kind to its role in the
// deployment, mirrored into the deployment summary.
var resourcePurposes = map[domain.ResourceKind]struct{ armType, purpose string }{
	domain.KindKeyVault:          {"Microsoft.KeyVault/vaults", "Secure storage for secrets, keys, and certificates"},
	domain.KindAIServices:        {"Microsoft.CognitiveServices/accounts", "Primary AI services account for unified AI capabilities"},
	domain.KindContainerRegistry: {"Microsoft.ContainerRegistry/registries", "Custom AI model deployment"},
	domain.KindStorageAccount:    {"Microsoft.Storage/storageAccounts", "AI training data, models, and artifacts"},
	domain.KindLogWorkspace:      {"Microsoft.OperationalInsights/workspaces", "Log analytics and monitoring"},
	domain.KindAppInsights:       {"Microsoft.Insights/components", "AI model monitoring and telemetry"},
	domain.KindSearch:            {"Microsoft.Search/searchServices", "AI-powered search and indexing capabilities"},
}

// BuildValidation converts an in-memory validation result into the wire
// report. The report shape partitions the ordered check list into
// successes, warnings and issues exactly as the aggregator classifies
// them.
func BuildValidation(result *validate.Result, environment map[string]string, azure api.AzureInfo) api.ValidationReport {
	summary := result.Summary()
	return api.ValidationReport{
		ValidationInfo: api.ValidationInfo{
			Timestamp:   time.Now().UTC(),
			Version:     Version,
			Environment: environment,
			AzureInfo:   azure,
		},
		Summary: api.ValidationSummary{
			TotalChecks: summary.TotalChecks,
			Passed:      summary.Passed,
			Failed:      summary.Failed,
			Warnings:    summary.Warnings,
			SuccessRate: summary.SuccessRate,
		},
		Checks:    toAPIChecks(result.Checks()),
		Successes: toAPIChecks(result.Successes()),
		Warnings:  toAPIChecks(result.Warnings()),
		Issues:    toAPIChecks(result.Issues()),
	}
}

// BuildDeployment converts provisioning outcomes into the deployment
// summary artifact.
func BuildDeployment(outcomes []domain.ProvisionOutcome, group, location string, azure api.AzureInfo) api.DeploymentSummary {
	resources := make(map[string]api.DeployedResource, len(outcomes))
	for _, o := range outcomes {
		meta := resourcePurposes[o.Spec.Kind]
		resources[string(o.Spec.Kind)] = api.DeployedResource{
			Name:    o.Spec.Name,
			Type:    meta.armType,
			Purpose: meta.purpose,
			State:   string(o.State),
			Error:   o.Error,
		}
	}
	return api.DeploymentSummary{
		DeploymentInfo: api.DeploymentInfo{
			Timestamp: time.Now().UTC(),
			Tool:      "foundry-forge",
			Version:   Version,
		},
		AzureInfo:     azure,
		ResourceGroup: group,
		Location:      location,
		Resources:     resources,
	}
}

// Write persists any artifact as indented JSON at path.
func Write(path string, artifact interface{}) error {
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", path, err)
	}
	return nil
}

// LoadValidation reads a previously written validation report.
func LoadValidation(path string) (*api.ValidationReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read validation report: %w", err)
	}
	var r api.ValidationReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse validation report %s: %w", path, err)
	}
	return &r, nil
}

// LoadDeployment reads a previously written deployment summary.
func LoadDeployment(path string) (*api.DeploymentSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deployment summary: %w", err)
	}
	var s api.DeploymentSummary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse deployment summary %s: %w", path, err)
	}
	return &s, nil
}

func toAPIChecks(checks []domain.ValidationCheck) []api.ValidationCheck {
	out := make([]api.ValidationCheck, 0, len(checks))
	for _, c := range checks {
		out = append(out, api.ValidationCheck{
			Category:  c.Category,
			Name:      c.Name,
			Status:    string(c.Status),
			Message:   c.Message,
			Details:   c.Details,
			Timestamp: c.Timestamp,
		})
	}
	return out
}
