package property

import "fmt"

// RejectedError reports a trial discarded by a constraint. It is not a failure.
type RejectedError struct {
	Test       string
	Arguments  string
	Constraint string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("Test %s rejected %s: %s", e.Test, e.Arguments, e.Constraint)
}

// InvariantError reports arguments whose result did not satisfy the invariant.
type InvariantError struct {
	Test      string
	Arguments string
	Result    string
	Invariant string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("Test %s failed; %s -> %s did not %s", e.Test, e.Arguments, e.Result, e.Invariant)
}

// ExhaustedError reports that the draw budget ran out before enough trials were decided.
type ExhaustedError struct {
	Test     string
	Attempts int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("Test %s failed; could not generate enough arguments even after %d attempts. "+
		"Relax the constraints or supply a custom generator with ProducedBy.", e.Test, e.Attempts)
}

func successMessage(name, invariant string) string {
	return fmt.Sprintf("%s did not fail to %s", name, invariant)
}
