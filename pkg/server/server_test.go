package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/de-tools/foundry-forge/pkg/models/api"
	"github.com/de-tools/foundry-forge/pkg/models/domain"
	"github.com/de-tools/foundry-forge/pkg/services/report"
	"github.com/de-tools/foundry-forge/pkg/services/validate"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T, reportPath, summaryPath string) *WebAPI {
	t.Helper()
	return NewWebAPI(zerolog.Nop(), Config{
		Addr:            ":0",
		ShutdownTimeout: time.Second,
		Dependencies: Dependencies{
			ReportPath:  reportPath,
			SummaryPath: summaryPath,
		},
	})
}

func testValidationArtifact(t *testing.T) api.ValidationReport {
	t.Helper()
	result := validate.NewResult()
	require.NoError(t, result.AddCheck("Resource Group", "Existence", domain.StatusPass, "exists", nil))
	return report.BuildValidation(result, map[string]string{}, api.AzureInfo{
		SubscriptionID: "sub-1",
		TenantID:       "tenant-1",
	})
}

func TestWebAPI_Healthz(t *testing.T) {
	webAPI := newTestAPI(t, "missing.json", "missing.json")

	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()

	webAPI.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestWebAPI_GetValidationReport(t *testing.T) {
	t.Run("serves the written artifact", func(t *testing.T) {
		dir := t.TempDir()
		reportPath := filepath.Join(dir, report.DefaultValidationFile)
		require.NoError(t, report.Write(reportPath, testValidationArtifact(t)))

		webAPI := newTestAPI(t, reportPath, filepath.Join(dir, "missing.json"))

		req := httptest.NewRequest("GET", "/api/v1/report", nil)
		rec := httptest.NewRecorder()
		webAPI.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var response api.ValidationReport
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, 1, response.Summary.TotalChecks)
		assert.Equal(t, 1, response.Summary.Passed)
	})

	t.Run("404 when no artifact exists", func(t *testing.T) {
		webAPI := newTestAPI(t, filepath.Join(t.TempDir(), "missing.json"), "missing.json")

		req := httptest.NewRequest("GET", "/api/v1/report", nil)
		rec := httptest.NewRecorder()
		webAPI.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestWebAPI_GetDeploymentSummary(t *testing.T) {
	dir := t.TempDir()
	summaryPath := filepath.Join(dir, report.DefaultDeploymentFile)

	outcomes := []domain.ProvisionOutcome{
		{Spec: domain.ResourceSpec{Kind: domain.KindKeyVault, Name: "kv-foundry"}, State: domain.StateCreated},
	}
	summary := report.BuildDeployment(outcomes, "rg-foundry", "westeurope", api.AzureInfo{
		SubscriptionID: "sub-1",
		TenantID:       "tenant-1",
	})
	require.NoError(t, report.Write(summaryPath, summary))

	webAPI := newTestAPI(t, filepath.Join(dir, "missing.json"), summaryPath)

	req := httptest.NewRequest("GET", "/api/v1/summary", nil)
	rec := httptest.NewRecorder()
	webAPI.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response api.DeploymentSummary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "rg-foundry", response.ResourceGroup)
	assert.Equal(t, "kv-foundry", response.Resources[string(domain.KindKeyVault)].Name)
}
