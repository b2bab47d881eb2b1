package jpltables

import "fmt"

// HeaderParseError is returned when the header file lacks information the
// conversion cannot proceed without, such as the EMRAT constant.
type HeaderParseError struct {
	Path   string
	Reason string
}

func (e *HeaderParseError) Error() string {
	if e.Path == "" {
		return "header parse error: " + e.Reason
	}
	return fmt.Sprintf("header parse error in %s: %s", e.Path, e.Reason)
}

// TokenFormatError is returned when a numeric token cannot be parsed.
type TokenFormatError struct {
	Token string
	Err   error
}

func (e *TokenFormatError) Error() string {
	return fmt.Sprintf("malformed numeric token %q: %v", e.Token, e.Err)
}

func (e *TokenFormatError) Unwrap() error {
	return e.Err
}
