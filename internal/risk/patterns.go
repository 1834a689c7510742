package risk

import "regexp"

// Pattern is one named high-risk rule. The name ends up in audit
// reasons, so keep it short and stable.
type Pattern struct {
	Name string
	Re   *regexp.Regexp
}

// highRiskPatterns are matched against the lowercase concatenation of
// type, scope, and target. First match wins; any match means LOCKED.
// The table is deliberately behind this package's interface so it can
// be swapped for a structured rule engine without touching callers.
var highRiskPatterns = []Pattern{
	{Name: "deployment", Re: regexp.MustCompile(`deploy`)},
	{Name: "production", Re: regexp.MustCompile(`production`)},
	{Name: "destructive-db", Re: regexp.MustCompile(`drop\s+table|truncate\s+table|delete\s+from\s`)},
	{Name: "recursive-delete", Re: regexp.MustCompile(`rm\s+-rf|rm\s+-fr`)},
	{Name: "critical-system", Re: regexp.MustCompile(`/etc/|systemctl|shutdown|kernel`)},
	{Name: "security-config", Re: regexp.MustCompile(`auth[-_]?config|security[-_]?(config|polic)|credential|secret[-_]?key|firewall`)},
}

// MatchHighRisk returns the name of the first high-risk pattern the
// string matches, or "" when none do.
func MatchHighRisk(s string) string {
	for _, p := range highRiskPatterns {
		if p.Re.MatchString(s) {
			return p.Name
		}
	}
	return ""
}
