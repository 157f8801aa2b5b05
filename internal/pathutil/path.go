package pathutil

import "regexp"

// URLSchemeRegex matches a URL scheme prefix such as "https:" or "file:".
// Schemes of a single letter are not matched so Windows drive letters
// ("C:\specs\api.yaml") are treated as paths.
var URLSchemeRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]+:`)

// HasURLScheme reports whether ref starts with a URL scheme.
func HasURLScheme(ref string) bool {
	return URLSchemeRegex.MatchString(ref)
}
