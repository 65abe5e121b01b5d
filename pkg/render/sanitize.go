package render

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	documentPolicyOnce sync.Once
	documentPolicy     *bluemonday.Policy
)

func sanitizeDocument(raw string) string {
	if raw == "" {
		return ""
	}
	return documentSanitizer().Sanitize(raw)
}

// documentSanitizer keeps basic formatting from authored templates along with
// the attributes the preview wrappers rely on.
func documentSanitizer() *bluemonday.Policy {
	documentPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowElements("span", "strong", "em", "u", "br", "p")
		policy.AllowAttrs("class").OnElements("span", "strong", "p")
		policy.AllowAttrs("data-variable", "data-active").OnElements("span")
		policy.AllowAttrs("data-clause").OnElements("strong")
		documentPolicy = policy
	})
	return documentPolicy
}
