package ratelimit

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Rule limits requests to one wizard route.
type Rule struct {
	Method string
	Path   string
	// Limit requests are allowed per Window.
	Limit  int
	Window time.Duration
	// Burst defaults to Limit.
	Burst int
}

// WizardRules returns the per-route limits for the wizard. The upload and
// results steps get the tightest budgets.
func WizardRules() []Rule {
	return []Rule{
		{Method: http.MethodPost, Path: "/details", Limit: 30, Window: time.Hour, Burst: 5},
		{Method: http.MethodPost, Path: "/jobs", Limit: 60, Window: time.Hour, Burst: 5},
		{Method: http.MethodPost, Path: "/apply", Limit: 100, Window: time.Minute, Burst: 10},
	}
}

func (r Rule) route() string {
	return r.Method + " " + r.Path
}

func (r Rule) refill() rate.Limit {
	if r.Window <= 0 {
		return rate.Inf
	}
	return rate.Limit(float64(r.Limit) / r.Window.Seconds())
}

func (r Rule) burst() int {
	if r.Burst > 0 {
		return r.Burst
	}
	return r.Limit
}

// exempt reports whether a route is never limited.
func exempt(method, path string) bool {
	return method == http.MethodGet && path == "/health"
}

// ruleFor returns the rule for method and path, falling back to def.
func ruleFor(method, path string, rules []Rule, def Rule) Rule {
	for _, r := range rules {
		if r.Method == method && r.Path == path {
			return r
		}
	}
	def.Method, def.Path = "*", "*"
	return def
}
