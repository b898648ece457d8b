package tag

import "regexp"

// namePattern accepts an optional lowercase category prefix followed by the tag body.
var namePattern = regexp.MustCompile(`^(?:[a-z]+:)?[a-zA-Z0-9.]+$`)

// Tag is a row of the tag table.
type Tag struct {
	ID   int64
	Name string
}

// Alias is an alternative name registered to a tag.
type Alias struct {
	TagID int64
	Name  string
}

// Implication is a directed edge: having From counts as having To.
type Implication struct {
	From int64
	To   int64
}

// ValidName reports whether name is a well-formed tag name.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// Category returns the category prefix of name without the colon, or "".
func Category(name string) string {
	for i := 0; i < len(name); i++ {
		if name[i] == ':' {
			return name[:i]
		}
	}
	return ""
}

// Edge is an implication whose target tag is resolved to its name.
type Edge struct {
	From int64
	To   Tag
}
