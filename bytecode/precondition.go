package bytecode

import "fmt"

// PreconditionError is a programmer-error fault raised by the emitter's
// parameter validation (spec.md §4.5, §7 "Precondition (emitter)"). Unlike
// the errs package's capacity/structural/container sentinels, preconditions
// are assertions: the caller is expected to fix the call site, not recover
// and retry with the same arguments.
type PreconditionError struct {
	Op      Opcode
	Message string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("bytecode: %s: %s", e.Op, e.Message)
}

func fault(op Opcode, format string, args ...any) error {
	return &PreconditionError{Op: op, Message: fmt.Sprintf(format, args...)}
}
