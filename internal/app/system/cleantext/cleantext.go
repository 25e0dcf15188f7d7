// internal/app/system/cleantext/cleantext.go
package cleantext

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy strips all markup; stored user text is plain text only.
var policy = bluemonday.StrictPolicy()

// Strip removes any HTML from user-submitted free text and trims
// surrounding whitespace. Used on issue reasons and suggestions before
// they are written to a document.
func Strip(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}
