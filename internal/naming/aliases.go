package naming

import "strings"

// AliasTable resolves a logical field from a raw input record whose column
// names vary between exports. Aliases are consulted in declared order and
// matched case-sensitively; the first column present with a non-blank value
// wins. This replaces the import scripts' scattered "whichever field exists"
// conditionals with one declared lookup order.
type AliasTable map[string][]string

// DefaultAliases covers the column spellings seen across roster exports.
var DefaultAliases = AliasTable{
	"name":    {"NAME", "name", "Name", "STUDENT NAME"},
	"parents": {"PARENTS", "parents", "Parents", "GUARDIANS"},
	"email":   {"STUDENT EMAIL", "EMAIL", "email", "Email"},
	"dob":     {"DOB", "dob", "DATE OF BIRTH"},
	"cohort":  {"GRADE", "grade", "COHORT", "cohort"},
}

// Resolve returns the first non-blank value among the field's aliases.
func (t AliasTable) Resolve(record map[string]string, field string) (string, bool) {
	for _, alias := range t[field] {
		if value, ok := record[alias]; ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed, true
			}
		}
	}
	return "", false
}
