package document

import "strings"

// Format identifies the on-disk form of a document.
type Format string

const (
	// FormatSingleFile is an unencrypted single-file document (.ctb).
	FormatSingleFile Format = "ctb"
	// FormatDirectory is an unencrypted directory-backed document (.ctd).
	FormatDirectory Format = "ctd"
	// FormatEncryptedFile is an encrypted single-file package (.ctx).
	FormatEncryptedFile Format = "ctx"
	// FormatEncryptedBundle is an encrypted compressed bundle (.ctz).
	FormatEncryptedBundle Format = "ctz"
)

// DetectFormat classifies path by its suffix. Matching is case-sensitive.
func DetectFormat(path string) (Format, bool) {
	for _, f := range []Format{FormatSingleFile, FormatDirectory, FormatEncryptedFile, FormatEncryptedBundle} {
		if strings.HasSuffix(path, "."+string(f)) {
			return f, true
		}
	}
	return "", false
}

// Encrypted reports whether documents of this format must be staged.
func (f Format) Encrypted() bool {
	return f == FormatEncryptedFile || f == FormatEncryptedBundle
}
