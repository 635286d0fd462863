package util

// ErrPublic is an error whose message is safe to show verbatim to the user,
// eg. a validation failure. Anything else is an internal error and should
// only be logged.
type ErrPublic string

func (e ErrPublic) Error() string {
	return string(e)
}

func (e ErrPublic) Is(v error) bool {
	_, ok := v.(ErrPublic)
	return ok
}
