package adapter

// InputDecodeError reports input text that is not valid JSON.
type InputDecodeError struct {
	Cause error
}

func (e *InputDecodeError) Error() string {
	return "input is not valid JSON: " + e.Cause.Error()
}

func (e *InputDecodeError) Unwrap() error {
	return e.Cause
}
