package transcript

import "context"

// Static returns a fixed script, for tests and offline runs.
type Static struct {
	Script string
	Err    error
}

func (s *Static) Generate(context.Context, string, string) (string, error) {
	return s.Script, s.Err
}
