package commands

import (
	"fmt"

	"github.com/de-tools/foundry-forge/pkg/runtime/terminal/export"
	"github.com/de-tools/foundry-forge/pkg/services/report"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type SummaryCmd struct {
	summaryPath string
	reportPath  string
	reporter    *export.Reporter
}

func NewSummaryCmd(reporter *export.Reporter) *cobra.Command {
	sc := &SummaryCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Render the latest deployment and validation artifacts",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.summaryPath, "summary", report.DefaultDeploymentFile, "Path to the deployment summary artifact")
	cmd.Flags().StringVar(&sc.reportPath, "report", report.DefaultValidationFile, "Path to the validation report artifact")

	return cmd
}

func (sc *SummaryCmd) run(cmd *cobra.Command, args []string) error {
	logger := zerolog.Ctx(cmd.Context())

	deployment, depErr := report.LoadDeployment(sc.summaryPath)
	validation, valErr := report.LoadValidation(sc.reportPath)
	if depErr != nil && valErr != nil {
		return fmt.Errorf("no artifacts found, run provision or validate first: %w", depErr)
	}

	if depErr != nil {
		logger.Warn().Err(depErr).Msg("no deployment summary")
	} else if err := sc.reporter.HandleDeployment(deployment); err != nil {
		return err
	}

	if valErr != nil {
		logger.Warn().Err(valErr).Msg("no validation report")
	} else if err := sc.reporter.HandleValidation(validation, false); err != nil {
		return err
	}

	return sc.reporter.HandleCosts(export.MonthlyCosts())
}
