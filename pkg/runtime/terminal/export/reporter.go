package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/foundry-forge/pkg/models/api"
	"github.com/de-tools/foundry-forge/pkg/models/domain"
)

type TableConfig struct {
	CategoryWidth int
	NameWidth     int
	StatusWidth   int
	MessageWidth  int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		CategoryWidth: 22,
		NameWidth:     28,
		StatusWidth:   6,
		MessageWidth:  60,
	}
}

// Reporter renders report artifacts to the console in a formatted text
// form.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) funcMap() template.FuncMap {
	return template.FuncMap{
		"formatRow": func(category, name, status, message string) string {
			return fmt.Sprintf("| %-*s | %-*s | %-*s | %-*s |",
				c.config.CategoryWidth, category,
				c.config.NameWidth, name,
				c.config.StatusWidth, status,
				c.config.MessageWidth, message)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.CategoryWidth+2),
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.StatusWidth+2),
				strings.Repeat("-", c.config.MessageWidth+2))
		},
	}
}

func (c *Reporter) render(name, tmpl string, data interface{}) error {
	t, err := template.New(name).Funcs(c.funcMap()).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse %s template: %w", name, err)
	}
	return t.Execute(c.writer, data)
}

// HandleValidation prints a validation report. In verbose mode every
// check is listed; otherwise only warnings and issues appear below the
// summary.
func (c *Reporter) HandleValidation(report *api.ValidationReport, verbose bool) error {
	tmpl := `
Validation Report ({{.Report.ValidationInfo.Timestamp.Format "2006-01-02 15:04:05 MST"}})
Subscription: {{.Report.ValidationInfo.AzureInfo.SubscriptionName}} ({{.Report.ValidationInfo.AzureInfo.SubscriptionID}})

Checks: {{.Report.Summary.TotalChecks}} total, {{.Report.Summary.Passed}} passed, {{.Report.Summary.Failed}} failed, {{.Report.Summary.Warnings}} warnings
Success Rate: {{printf "%.1f" .Report.Summary.SuccessRate}}%
{{if .Checks}}
{{separator}}
{{formatRow "Category" "Check" "Status" "Message"}}
{{separator}}
{{range .Checks}}{{formatRow .Category .Name .Status .Message}}
{{end}}{{separator}}
{{end}}`

	checks := report.Checks
	if !verbose {
		checks = append(append([]api.ValidationCheck{}, report.Issues...), report.Warnings...)
	}
	return c.render("validation", tmpl, struct {
		Report *api.ValidationReport
		Checks []api.ValidationCheck
	}{report, checks})
}

// HandleDeployment prints a deployment summary.
func (c *Reporter) HandleDeployment(summary *api.DeploymentSummary) error {
	tmpl := `
Deployment Summary ({{.DeploymentInfo.Timestamp.Format "2006-01-02 15:04:05 MST"}})
Subscription: {{.AzureInfo.SubscriptionName}} ({{.AzureInfo.SubscriptionID}})
Resource Group: {{.ResourceGroup}} ({{.Location}})

{{range $kind, $res := .Resources}}
- {{$res.Name}} [{{$kind}}]: {{$res.State}}{{if $res.Error}}
  error: {{$res.Error}}{{end}}
  {{$res.Purpose}}
{{end}}
`
	return c.render("deployment", tmpl, summary)
}

// HandlePlan prints the resources a dry run would converge, without
// touching anything.
func (c *Reporter) HandlePlan(group, location string, specs []domain.ResourceSpec) error {
	tmpl := `
Provisioning Plan (dry run)
Resource Group: {{.Group}} ({{.Location}})

{{range .Specs}}
- {{.Name}} ({{.Kind}})
{{end}}
No changes were made.
`
	return c.render("plan", tmpl, struct {
		Group    string
		Location string
		Specs    []domain.ResourceSpec
	}{group, location, specs})
}

// ResourceStatus is one row of the quick existence check.
type ResourceStatus struct {
	Name    string
	Kind    string
	ArmType string
	Found   bool
}

// HandleCheck prints the quick existence scan.
func (c *Reporter) HandleCheck(group string, statuses []ResourceStatus, secretNames []string) error {
	tmpl := `
Resource Check: {{.Group}}

{{range .Statuses}}{{if .Found}}[ok]      {{else}}[missing]{{end}} {{.Name}} ({{.Kind}}){{if .ArmType}}
          {{.ArmType}}{{end}}
{{end}}{{if .Secrets}}
Key Vault secrets:
{{range .Secrets}}  - {{.}}
{{end}}{{end}}`
	return c.render("check", tmpl, struct {
		Group    string
		Statuses []ResourceStatus
		Secrets  []string
	}{group, statuses, secretNames})
}

// CostEstimate is a named monthly cost line in the summary overview.
type CostEstimate struct {
	Resource string
	Cost     string
}

// MonthlyCosts returns the static cost table shown in the summary
// overview. Figures are list prices for the SKUs the deployment uses.
func MonthlyCosts() []CostEstimate {
	return []CostEstimate{
		{"Key Vault", "$0.03/10,000 operations"},
		{"AI Services (S0)", "$22.00/month base + usage"},
		{"Container Registry (Basic)", "$5.00/month + storage"},
		{"Storage Account", "$0.024/GB/month + operations"},
		{"Log Analytics", "$2.30/GB ingested"},
		{"Application Insights", "$2.88/GB ingested"},
		{"Total Estimated", "$30-50/month (depends on usage)"},
	}
}

// HandleCosts prints the estimated monthly cost table.
func (c *Reporter) HandleCosts(costs []CostEstimate) error {
	tmpl := `
Estimated Monthly Costs
{{range .}}
  {{.Resource}}: {{.Cost}}
{{end}}
`
	return c.render("costs", tmpl, costs)
}
