package templates

import _ "embed"

//go:embed assets/style.css
var stylesheet []byte

// Stylesheet returns the shared stylesheet copied into every project so the
// generated app owns its CSS instead of importing it from a package.
func Stylesheet() []byte {
	out := make([]byte, len(stylesheet))
	copy(out, stylesheet)
	return out
}
