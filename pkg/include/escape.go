package include

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	// Tag is the mapping key that splices other files into a document.
	Tag = "$include"

	// EscapedTag is the source spelling of a literal, non-directive key.
	// It is emitted as Tag in compiled output.
	EscapedTag = `\$include`

	// idLength is the length of the suffix that makes each directive key unique.
	idLength = 25
)

var (
	// directiveLine matches a live directive key at the start of a line,
	// optionally behind sequence dashes or indentation.
	directiveLine = regexp.MustCompile(`(?mi)^[- \t]*\$include[- \t]*:`)

	// directiveKey matches the unique keys produced by EscapeDirectives.
	directiveKey = regexp.MustCompile(`^\$include_[a-z0-9]{25}$`)
)

// IDGenerator produces the unique suffixes appended to directive keys.
// Implementations must return idLength lowercase alphanumeric characters.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator derives suffixes from random UUIDs.
type UUIDGenerator struct{}

// NewID returns the first 25 hex digits of a fresh UUID.
func (UUIDGenerator) NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:idLength]
}

// EscapeDirectives rewrites every live "$include:" key in src into
// "$include_<id>:" with a fresh id per occurrence. Sibling directives then
// survive YAML parsing as distinct keys instead of colliding. Keys written
// as "\$include:" are left untouched.
func EscapeDirectives(src string, ids IDGenerator) string {
	return directiveLine.ReplaceAllStringFunc(src, func(match string) string {
		return strings.Replace(match, Tag, Tag+"_"+ids.NewID(), 1)
	})
}

// IsDirectiveKey reports whether key was produced by EscapeDirectives.
func IsDirectiveKey(key string) bool {
	return directiveKey.MatchString(key)
}
