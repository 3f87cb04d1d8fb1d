package errors

import "strings"

// ContractViolation reports a broken serialization contract: a type asked for
// a second container at the same path, re-encoded a single value, or requested
// superclass delegation. It is raised with panic and is not meant to be
// recovered and retried; it signals a bug in the type, not in the data.
type ContractViolation struct {
	Detail string
	Path   []string
}

func (c *ContractViolation) Error() string {
	var b strings.Builder
	b.WriteString("contract violation")
	if len(c.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(c.Path, "."))
	}
	b.WriteString(": ")
	b.WriteString(c.Detail)
	return b.String()
}

// Violation panics with a ContractViolation.
func Violation(path []string, detail string) {
	panic(&ContractViolation{Detail: detail, Path: path})
}

// IsContractViolation reports whether a recovered panic value is a ContractViolation.
func IsContractViolation(recovered any) bool {
	_, ok := recovered.(*ContractViolation)
	return ok
}
