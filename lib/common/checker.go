package common

// Checker carries the state shared by a chain of CheckerFuncs.
type Checker interface {
	GetFuncs() []CheckerFunc
}

type CheckerFunc func(Checker, ...interface{}) error

// CheckerTrace observes the result of each step of RunChecker.
type CheckerTrace func(step int, err error)

type DefaultChecker struct {
	Funcs []CheckerFunc
}

func (c *DefaultChecker) GetFuncs() []CheckerFunc {
	return c.Funcs
}

// RunChecker runs the funcs of checker in order until one fails. trace may be
// nil.
func RunChecker(checker Checker, trace CheckerTrace, args ...interface{}) error {
	for step, f := range checker.GetFuncs() {
		err := f(checker, args...)
		if trace != nil {
			trace(step, err)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
