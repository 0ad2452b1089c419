package commands

import (
	"time"

	"github.com/de-tools/foundry-forge/pkg/server"
	"github.com/de-tools/foundry-forge/pkg/services/report"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ServeCmd struct {
	addr        string
	summaryPath string
	reportPath  string
}

func NewServeCmd() *cobra.Command {
	sc := &ServeCmd{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the report artifacts over HTTP",
		Long:  "Exposes the latest deployment summary and validation report as JSON for dashboard tooling.",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.addr, "addr", ":8080", "Address to listen on")
	cmd.Flags().StringVar(&sc.summaryPath, "summary", report.DefaultDeploymentFile, "Path to the deployment summary artifact")
	cmd.Flags().StringVar(&sc.reportPath, "report", report.DefaultValidationFile, "Path to the validation report artifact")

	return cmd
}

func (sc *ServeCmd) run(cmd *cobra.Command, args []string) error {
	logger := zerolog.Ctx(cmd.Context())

	api := server.NewWebAPI(*logger, server.Config{
		Addr:            sc.addr,
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			ReportPath:  sc.reportPath,
			SummaryPath: sc.summaryPath,
		},
	})
	return api.Start()
}
