package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"gopkg.in/ini.v1"
)

const DefaultProfile = "default"

// AuthenticationError wraps a failure to establish an Azure identity.
// It is fatal at the process level.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("azure authentication failed: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// Profile identifies the subscription and signed-in user a run targets.
type Profile struct {
	SubscriptionID   string
	SubscriptionName string
	TenantID         string
	User             string
	Credentials      *azidentity.AzureCLICredential
}

func azBinary() string {
	if runtime.GOOS == "windows" {
		return "az.cmd"
	}
	return "az"
}

// LoadProfile resolves the active subscription via `az account show`,
// falling back to the ~/.azure/config ini profile when the CLI is not
// available, and builds CLI-backed credentials. Any failure here is an
// AuthenticationError.
func LoadProfile(ctx context.Context) (*Profile, error) {
	profile, err := accountShow(ctx)
	if err != nil {
		profile, err = profileFromConfigFile(DefaultProfile)
		if err != nil {
			return nil, &AuthenticationError{Err: err}
		}
	}

	cred, err := azidentity.NewAzureCLICredential(&azidentity.AzureCLICredentialOptions{})
	if err != nil {
		return nil, &AuthenticationError{Err: fmt.Errorf("failed to create Azure CLI credential: %w", err)}
	}
	profile.Credentials = cred
	return profile, nil
}

// SignedInUserObjectID returns the object ID of the signed-in user, used
// for vault access policies and role assignments. The directory lookup
// is only available through the CLI.
func SignedInUserObjectID(ctx context.Context) (string, error) {
	out, err := runAz(ctx, "ad", "signed-in-user", "show", "--query", "id", "-o", "tsv")
	if err != nil {
		return "", fmt.Errorf("failed to get signed-in user object id: %w", err)
	}
	id := strings.TrimSpace(out)
	if id == "" {
		return "", fmt.Errorf("signed-in user lookup returned an empty object id")
	}
	return id, nil
}

// RegisterProviders registers the resource providers the deployment
// needs. Registration is idempotent; individual failures are returned
// so the caller can log them as warnings.
func RegisterProviders(ctx context.Context) map[string]error {
	providers := []string{
		"Microsoft.KeyVault",
		"Microsoft.CognitiveServices",
		"Microsoft.ContainerRegistry",
		"Microsoft.Storage",
		"Microsoft.OperationalInsights",
		"Microsoft.Insights",
		"Microsoft.Authorization",
		"Microsoft.Search",
	}
	failures := map[string]error{}
	for _, p := range providers {
		if _, err := runAz(ctx, "provider", "register", "--namespace", p); err != nil {
			failures[p] = err
		}
	}
	return failures
}

func accountShow(ctx context.Context) (*Profile, error) {
	out, err := runAz(ctx, "account", "show", "-o", "json")
	if err != nil {
		return nil, fmt.Errorf("az account show failed: %w", err)
	}

	var account struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		TenantID string `json:"tenantId"`
		User     struct {
			Name string `json:"name"`
		} `json:"user"`
	}
	if err := json.Unmarshal([]byte(out), &account); err != nil {
		return nil, fmt.Errorf("failed to parse az account output: %w", err)
	}
	if account.ID == "" || account.TenantID == "" {
		return nil, fmt.Errorf("az account output is missing subscription or tenant id")
	}

	return &Profile{
		SubscriptionID:   account.ID,
		SubscriptionName: account.Name,
		TenantID:         account.TenantID,
		User:             account.User.Name,
	}, nil
}

func profileFromConfigFile(profile string) (*Profile, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("unable to get home directory: %w", err)
	}

	cfg, err := ini.Load(filepath.Join(homeDir, ".azure", "config"))
	if err != nil {
		return nil, fmt.Errorf("unable to load Azure config file: %w", err)
	}

	section, err := cfg.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found in Azure config: %w", profile, err)
	}

	p := &Profile{
		SubscriptionID: section.Key("subscription").String(),
		TenantID:       section.Key("tenant").String(),
	}
	if p.SubscriptionID == "" {
		return nil, fmt.Errorf("subscription ID not found in profile %s", profile)
	}
	return p, nil
}

func runAz(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, azBinary(), args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}
	return stdout.String(), nil
}
