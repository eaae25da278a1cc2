package error

// Coded is embedded by every domain error type. Code is stable for API
// clients, Message is safe to show them, and Err is the cause, if any.
type Coded[C ~string] struct {
	Code    C
	Message string
	Err     error
}

func (e Coded[C]) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e Coded[C]) Unwrap() error {
	return e.Err
}

// Detail exposes the code and message to callers that only know C, such as
// the HTTP layer rendering any domain error.
func (e Coded[C]) Detail() Coded[C] {
	return e
}
