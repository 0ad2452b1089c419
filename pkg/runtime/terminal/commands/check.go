package commands

import (
	"fmt"

	"github.com/de-tools/foundry-forge/pkg/runtime/terminal/export"
	"github.com/de-tools/foundry-forge/pkg/services/azure"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type CheckCmd struct {
	envFile  string
	reporter *export.Reporter
}

func NewCheckCmd(reporter *export.Reporter) *cobra.Command {
	cc := &CheckCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Quick existence scan of the deployed resources",
		Long: "Lists everything in the resource group with a single API call and marks each " +
			"expected resource found or missing. Faster than a full validation run.",
		RunE: cc.run,
	}

	cmd.Flags().StringVar(&cc.envFile, "env-file", ".env", "Path to the environment file")

	return cmd
}

func (cc *CheckCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	sess, err := newSession(ctx, cc.envFile)
	if err != nil {
		return err
	}
	cfg := sess.cfg

	deployed, err := sess.clients.Group.ListResources(ctx, cfg.ResourceGroup)
	if err != nil {
		return fmt.Errorf("resource group %q is not reachable: %w", cfg.ResourceGroup, err)
	}

	missing := 0
	specs := cfg.ResourceSpecs()
	statuses := make([]export.ResourceStatus, 0, len(specs))
	for _, spec := range specs {
		armType, found := deployed[spec.Name]
		if !found {
			missing++
		}
		statuses = append(statuses, export.ResourceStatus{
			Name:    spec.Name,
			Kind:    string(spec.Kind),
			ArmType: armType,
			Found:   found,
		})
	}

	var secretNames []string
	if store, err := azure.NewSecretStore(sess.profile, cfg.KeyVaultName); err == nil {
		if secretNames, err = store.List(ctx); err != nil {
			logger.Warn().Err(err).Msg("could not list vault secrets")
		}
	}

	if err := cc.reporter.HandleCheck(cfg.ResourceGroup, statuses, secretNames); err != nil {
		return err
	}

	if missing > 0 {
		return fmt.Errorf("%d of %d expected resources are missing", missing, len(specs))
	}
	return nil
}
