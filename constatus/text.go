package constatus

import "strings"

var textTokens = strings.NewReplacer(
	"%D", "$pixels-changed$",
	"%K", "$motion-center-x$",
	"%L", "$motion-center-y$",
	"%i", "$motion-width$",
	"%J", "$motion-height$",
)

// ConvertText rewrites motion's text overlay conversion specifiers into
// constatus' $name$ tokens. Specifiers without an equivalent are kept.
func ConvertText(t string) string {
	return textTokens.Replace(t)
}
