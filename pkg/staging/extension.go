package staging

import "strings"

// extensionTransforms maps the suffix of an encrypted document to the suffix
// of its staged, decrypted form. Matching is case-sensitive.
var extensionTransforms = []struct {
	from string
	to   string
}{
	{from: ".ctx", to: ".ctb"},
	{from: ".ctz", to: ".ctd"},
}

// HiddenBasename rewrites the final character of base according to the
// transform table. ok is false when base carries no recognized suffix, in
// which case base is returned unchanged.
func HiddenBasename(base string) (name string, ok bool) {
	for _, t := range extensionTransforms {
		if strings.HasSuffix(base, t.from) {
			return strings.TrimSuffix(base, t.from) + t.to, true
		}
	}
	return base, false
}

// IsStagedExtension reports whether base would be staged under a new name.
func IsStagedExtension(base string) bool {
	_, ok := HiddenBasename(base)
	return ok
}
