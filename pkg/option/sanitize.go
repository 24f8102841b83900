package option

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// SanitizeLabel strips any markup from a display label. Labels originate in
// remote CRM records and end up inside rendered HTML and terminal escapes, so
// only plain text survives.
func SanitizeLabel(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(labelSanitizer().Sanitize(trimmed))
}

func labelSanitizer() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	return labelPolicy
}
