package validate

import (
	"fmt"
	"time"

	"github.com/de-tools/foundry-forge/pkg/models/domain"
)

// Result accumulates validation checks for a single run. Checks are
// append-only; nothing edits or removes an entry once recorded. A Result
// is owned by one run and is not safe for concurrent use.
type Result struct {
	checks []domain.ValidationCheck
	now    func() time.Time
}

func NewResult() *Result {
	return &Result{now: time.Now}
}

// AddCheck records one check and classifies it into exactly one of the
// PASS/FAIL/WARN buckets. A status outside the closed enumeration is a
// contract violation and is rejected.
func (r *Result) AddCheck(
	category, name string,
	status domain.CheckStatus,
	message string,
	details map[string]interface{},
) error {
	if !status.Valid() {
		return fmt.Errorf("invalid check status %q for %s/%s", status, category, name)
	}
	if details == nil {
		details = map[string]interface{}{}
	}
	r.checks = append(r.checks, domain.ValidationCheck{
		Category:  category,
		Name:      name,
		Status:    status,
		Message:   message,
		Details:   details,
		Timestamp: r.now(),
	})
	return nil
}

// Checks returns the full ordered check list.
func (r *Result) Checks() []domain.ValidationCheck {
	return r.checks
}

// Successes returns the checks that passed.
func (r *Result) Successes() []domain.ValidationCheck {
	return r.filter(domain.StatusPass)
}

// Issues returns the failed checks.
func (r *Result) Issues() []domain.ValidationCheck {
	return r.filter(domain.StatusFail)
}

// Warnings returns the checks recorded as warnings.
func (r *Result) Warnings() []domain.ValidationCheck {
	return r.filter(domain.StatusWarn)
}

func (r *Result) filter(status domain.CheckStatus) []domain.ValidationCheck {
	out := make([]domain.ValidationCheck, 0, len(r.checks))
	for _, c := range r.checks {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out
}

// Summary computes the aggregate statistics. The success rate is defined
// as 0 when no checks were recorded.
func (r *Result) Summary() domain.ValidationSummary {
	s := domain.ValidationSummary{TotalChecks: len(r.checks)}
	for _, c := range r.checks {
		switch c.Status {
		case domain.StatusPass:
			s.Passed++
		case domain.StatusFail:
			s.Failed++
		case domain.StatusWarn:
			s.Warnings++
		}
	}
	if s.TotalChecks > 0 {
		s.SuccessRate = float64(s.Passed) / float64(s.TotalChecks) * 100
	}
	return s
}

// HasCriticalIssues reports whether at least one FAIL check was recorded.
// Warnings never count as critical.
func (r *Result) HasCriticalIssues() bool {
	for _, c := range r.checks {
		if c.Status == domain.StatusFail {
			return true
		}
	}
	return false
}
