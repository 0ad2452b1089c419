package reports

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/de-tools/foundry-forge/pkg/services/report"
	"github.com/rs/zerolog"
)

// Handler serves the report artifacts produced by provision and
// validate runs. Artifacts are re-read on every request so the endpoint
// always reflects the latest run.
type Handler struct {
	reportPath  string
	summaryPath string
}

func NewHandler(reportPath, summaryPath string) *Handler {
	return &Handler{
		reportPath:  reportPath,
		summaryPath: summaryPath,
	}
}

func (h *Handler) GetValidationReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	artifact, err := report.LoadValidation(h.reportPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			http.Error(w, "no validation report, run `foundry validate` first", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Msg("failed to load validation report")
		http.Error(w, "failed to load validation report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(artifact); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode validation report")
	}
}

func (h *Handler) GetDeploymentSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	artifact, err := report.LoadDeployment(h.summaryPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			http.Error(w, "no deployment summary, run `foundry provision` first", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Msg("failed to load deployment summary")
		http.Error(w, "failed to load deployment summary", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(artifact); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode deployment summary")
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
