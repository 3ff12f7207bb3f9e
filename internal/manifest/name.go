package manifest

import (
	"regexp"
	"strings"
)

var (
	validName   = regexp.MustCompile(`^(?:@[a-z\d\-*~][a-z\d\-*._~]*/)?[a-z\d\-~][a-z\d\-._~]*$`)
	whitespace  = regexp.MustCompile(`\s+`)
	leadingMark = regexp.MustCompile(`^[._]`)
	invalidRun  = regexp.MustCompile(`[^a-z\d\-~]+`)
)

// IsValidName reports whether name is acceptable as a package name.
func IsValidName(name string) bool {
	return validName.MatchString(name)
}

// NormalizeName derives a package name from a free-form project title.
// Titles that are already valid names are returned unchanged.
func NormalizeName(title string) string {
	if IsValidName(title) {
		return title
	}
	name := strings.ToLower(strings.TrimSpace(title))
	name = whitespace.ReplaceAllString(name, "-")
	name = leadingMark.ReplaceAllString(name, "")
	return invalidRun.ReplaceAllString(name, "-")
}
