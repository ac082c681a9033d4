package request

import (
	"regexp"
	"strings"
)

// user_info columns a caller may target: set_value itself, or set_value_
// followed by at least one of [a-z0-9_]. Everything else is rejected,
// including other table columns and a bare "set_value_". This gate must run
// before any caller-supplied column name reaches the data store.
var allowedColumnPattern = regexp.MustCompile(`^set_value_[a-z0-9_]+$`)

// NormalizeColumn lowercases and trims a column selector.
func NormalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// IsAllowedColumn reports whether a caller-supplied column name may be used
// in a read or write. Comparison is case-insensitive.
func IsAllowedColumn(name string) bool {
	col := NormalizeColumn(name)
	return col == DefaultColumn || allowedColumnPattern.MatchString(col)
}
