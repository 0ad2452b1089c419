package secrets

import "strings"

// Expectation describes one secret the deployment is expected to hold.
// Check inspects a retrieved value and returns a problem description, or
// "" when the format looks right. The same table drives both propagation
// naming and validation so the two can never drift apart.
type Expectation struct {
	Name        string
	Description string
	Check       func(value string) string
}

const (
	NameAIServicesKey        = "ai-services-key"
	NameAIServicesEndpoint   = "ai-services-endpoint"
	NameSearchAdminKey       = "cognitive-search-admin-key"
	NameSearchQueryKey       = "cognitive-search-query-key"
	NameSearchEndpoint       = "cognitive-search-endpoint"
	NameStorageConnection    = "storage-connection-string"
	NameAppInsightsConnection = "app-insights-connection-string"
)

// Expected returns the canonical secret table, in propagation order.
func Expected() []Expectation {
	return []Expectation{
		{NameAIServicesKey, "AI Services API key", checkKey},
		{NameAIServicesEndpoint, "AI Services endpoint URL", checkHTTPS},
		{NameSearchAdminKey, "Cognitive Search admin key", checkNonEmpty},
		{NameSearchQueryKey, "Cognitive Search query key", checkNonEmpty},
		{NameSearchEndpoint, "Cognitive Search endpoint URL", checkHTTPS},
		{NameStorageConnection, "Storage account connection string", checkContains("AccountName=")},
		{NameAppInsightsConnection, "Application Insights connection string", checkContains("InstrumentationKey=")},
	}
}

func checkNonEmpty(v string) string {
	if strings.TrimSpace(v) == "" {
		return "value is empty"
	}
	return ""
}

func checkKey(v string) string {
	if msg := checkNonEmpty(v); msg != "" {
		return msg
	}
	// Azure service keys are 32 characters or longer.
	if len(v) < 32 {
		return "key is shorter than 32 characters"
	}
	return ""
}

func checkHTTPS(v string) string {
	if msg := checkNonEmpty(v); msg != "" {
		return msg
	}
	if !strings.HasPrefix(v, "https://") {
		return "endpoint does not start with https://"
	}
	return ""
}

func checkContains(token string) func(string) string {
	return func(v string) string {
		if msg := checkNonEmpty(v); msg != "" {
			return msg
		}
		if !strings.Contains(v, token) {
			return "value does not contain " + token
		}
		return ""
	}
}

// Mask renders a secret value safe for logs: the first 8 characters at
// most, never the full value.
func Mask(v string) string {
	if len(v) > 8 {
		return v[:8] + "..."
	}
	return "[hidden]"
}
