package commands

import (
	"fmt"

	"github.com/de-tools/foundry-forge/pkg/runtime/terminal/export"
	"github.com/de-tools/foundry-forge/pkg/services/azure"
	"github.com/de-tools/foundry-forge/pkg/services/rbac"
	"github.com/de-tools/foundry-forge/pkg/services/report"
	"github.com/de-tools/foundry-forge/pkg/services/validate"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ValidateCmd struct {
	envFile    string
	verbose    bool
	fixIssues  bool
	reportPath string
	reporter   *export.Reporter
}

func NewValidateCmd(reporter *export.Reporter) *cobra.Command {
	vc := &ValidateCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the deployed AI Foundry resources",
		Long: "Runs every resource validator against the deployment, prints the outcome and " +
			"writes a JSON report artifact. Exits non-zero when any check fails.",
		RunE: vc.run,
	}

	cmd.Flags().StringVar(&vc.envFile, "env-file", ".env", "Path to the environment file")
	cmd.Flags().BoolVar(&vc.verbose, "verbose", false, "List every check, not only warnings and failures")
	cmd.Flags().BoolVar(&vc.fixIssues, "fix-issues", false, "Record a remediation request in the report (remediation itself is not implemented)")
	cmd.Flags().StringVar(&vc.reportPath, "report", report.DefaultValidationFile, "Path for the validation report artifact")

	return cmd
}

func (vc *ValidateCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	sess, err := newSession(ctx, vc.envFile)
	if err != nil {
		return err
	}
	cfg := sess.cfg

	var reader validate.SecretReader
	if store, err := azure.NewSecretStore(sess.profile, cfg.KeyVaultName); err != nil {
		logger.Warn().Err(err).Msg("vault unreachable, secret checks will degrade to warnings")
	} else {
		reader = store
	}

	scope := rbac.GroupScope(sess.profile.SubscriptionID, cfg.ResourceGroup)
	result := validate.Run(ctx, sess.clients.ValidationProviders(reader), cfg, scope, sess.objectID)

	environment := cfg.Environment()
	if vc.fixIssues {
		environment["FIX_ISSUES_REQUESTED"] = "true"
		logger.Info().Msg("fix-issues requested; rerun provision to converge missing resources")
	}

	artifact := report.BuildValidation(result, environment, sess.azureInfo())
	if err := report.Write(vc.reportPath, artifact); err != nil {
		return err
	}
	logger.Info().Str("path", vc.reportPath).Msg("validation report written")

	if err := vc.reporter.HandleValidation(&artifact, vc.verbose); err != nil {
		return err
	}

	if result.HasCriticalIssues() {
		return fmt.Errorf("validation found %d failed checks", artifact.Summary.Failed)
	}
	return nil
}
