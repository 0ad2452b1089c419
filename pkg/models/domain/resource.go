package domain

// ResourceKind identifies one of the managed Azure resource types
// that make up an AI Foundry environment.
type ResourceKind string

const (
	KindResourceGroup     ResourceKind = "ResourceGroup"
	KindKeyVault          ResourceKind = "KeyVault"
	KindAIServices        ResourceKind = "AIServices"
	KindContainerRegistry ResourceKind = "ContainerRegistry"
	KindStorageAccount    ResourceKind = "StorageAccount"
	KindLogWorkspace      ResourceKind = "LogWorkspace"
	KindAppInsights       ResourceKind = "AppInsights"
	KindSearch            ResourceKind = "Search"
)

// ResourceSpec declares a single resource to provision. Specs are built
// once from configuration and never mutated afterwards.
type ResourceSpec struct {
	Kind     ResourceKind
	Name     string
	Location string
	Tags     map[string]string
}

// ProvisionState is the uniform outcome of one provisioning attempt.
type ProvisionState string

const (
	StateCreated       ProvisionState = "Created"
	StateAlreadyExists ProvisionState = "AlreadyExists"
	StateFailed        ProvisionState = "Failed"
)

// ProvisionOutcome records what happened to one spec during a run.
type ProvisionOutcome struct {
	Spec  ResourceSpec
	State ProvisionState
	Error string
}

// Failed reports whether the outcome is a failure.
func (o ProvisionOutcome) Failed() bool {
	return o.State == StateFailed
}

// SecretEntry describes one credential deposited into the secret store.
// Value is sensitive and must only ever be logged masked.
type SecretEntry struct {
	Name           string
	Value          string
	SourceResource string
}
