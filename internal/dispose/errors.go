package dispose

import "github.com/pkg/errors"

// ContractViolation is a precondition failure per spec §7: a missing
// CFG, a missing Disposable symbol, a missing points-to result, or a
// non-disposable location passed to SetAbstractValue. It is not a
// recoverable, user-facing error — callers are expected to fix the
// calling code, not to branch on it (hence wrapping with
// github.com/pkg/errors for a stack trace at the point of detection).
type ContractViolation struct {
	Message string
}

func (c *ContractViolation) Error() string { return "dispose: contract violation: " + c.Message }

// wrapContractViolation attaches a stack trace to a freshly constructed
// ContractViolation.
func wrapContractViolation(message string) error {
	return errors.WithStack(&ContractViolation{Message: message})
}
