package commands

import (
	"fmt"

	"github.com/de-tools/foundry-forge/pkg/runtime/terminal/export"
	"github.com/de-tools/foundry-forge/pkg/services/azure"
	"github.com/de-tools/foundry-forge/pkg/services/config"
	"github.com/de-tools/foundry-forge/pkg/services/provision"
	"github.com/de-tools/foundry-forge/pkg/services/rbac"
	"github.com/de-tools/foundry-forge/pkg/services/report"
	"github.com/de-tools/foundry-forge/pkg/services/secrets"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ProvisionCmd struct {
	envFile     string
	dryRun      bool
	summaryPath string
	reporter    *export.Reporter
}

func NewProvisionCmd(reporter *export.Reporter) *cobra.Command {
	pc := &ProvisionCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Provision the AI Foundry resource set",
		Long: "Creates the resource group, key vault, AI services account, container registry, " +
			"storage account, log analytics workspace, application insights component and " +
			"cognitive search service, then propagates credentials and assigns roles. " +
			"Resources that already exist are left untouched.",
		RunE: pc.run,
	}

	cmd.Flags().StringVar(&pc.envFile, "env-file", ".env", "Path to the environment file")
	cmd.Flags().BoolVar(&pc.dryRun, "dry-run", false, "Print the provisioning plan without making changes")
	cmd.Flags().StringVar(&pc.summaryPath, "summary", report.DefaultDeploymentFile, "Path for the deployment summary artifact")

	return cmd
}

func (pc *ProvisionCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	if pc.dryRun {
		cfg, err := config.Load(pc.envFile)
		if err != nil {
			return err
		}
		return pc.reporter.HandlePlan(cfg.ResourceGroup, cfg.Location, cfg.ResourceSpecs())
	}

	sess, err := newSession(ctx, pc.envFile)
	if err != nil {
		return err
	}
	cfg := sess.cfg

	for namespace, err := range azure.RegisterProviders(ctx) {
		logger.Warn().Err(err).Str("namespace", namespace).Msg("provider registration failed")
	}

	sess.clients.Insights.UseWorkspace(cfg.LogWorkspaceName)

	deployment := provision.NewDeployment(
		provision.NewProvisioner(),
		sess.clients.Group,
		sess.clients.ProvisionClients(),
	)
	outcomes, err := deployment.Run(ctx, cfg)
	if err != nil {
		return err
	}

	if store, err := azure.NewSecretStore(sess.profile, cfg.KeyVaultName); err != nil {
		logger.Warn().Err(err).Msg("vault unreachable, skipping credential propagation")
	} else {
		secrets.NewPropagator(store).Propagate(ctx, azure.SecretSources(sess.clients, cfg))
	}

	if sess.objectID != "" {
		scope := rbac.GroupScope(sess.profile.SubscriptionID, cfg.ResourceGroup)
		state := rbac.NewAssigner(sess.clients.Roles).
			EnsureRole(ctx, scope, sess.objectID, rbac.AIDeveloperRoleID)
		logger.Info().Str("state", string(state)).Msg("AI Developer role")
	}

	summary := report.BuildDeployment(outcomes, cfg.ResourceGroup, cfg.Location, sess.azureInfo())
	if err := report.Write(pc.summaryPath, summary); err != nil {
		return err
	}
	logger.Info().Str("path", pc.summaryPath).Msg("deployment summary written")

	if err := pc.reporter.HandleDeployment(&summary); err != nil {
		return err
	}

	failed := 0
	for _, o := range outcomes {
		if o.Failed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("provisioning finished with %d of %d resources failed", failed, len(outcomes))
	}
	return nil
}
