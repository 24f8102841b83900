package render

import (
	"fmt"
	"strings"
)

// HiddenField is a hidden input emitted alongside the visible form. The
// helpers cover the common cases without repeating boilerplate.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken constructs a hidden field carrying the provided token. Callers
// supply the input name to match their backend ("_csrf", "csrf_token", ...).
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// RecordVersion stamps the optimistic-lock version of the record being
// edited so the save endpoint can reject concurrent writes.
func RecordVersion(version any) HiddenField {
	return Hidden("_version", version)
}

// MethodOverride emits the hidden _method input browsers need for verbs
// other than GET and POST.
func MethodOverride(method string) HiddenField {
	return Hidden("_method", strings.ToUpper(strings.TrimSpace(method)))
}
