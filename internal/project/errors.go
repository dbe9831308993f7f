package project

// SecretError reports that the JWT secret could not be generated. Nothing
// that embeds the secret is written when it occurs.
type SecretError struct {
	Err error
}

func (e *SecretError) Error() string {
	return "generating JWT secret: " + e.Err.Error()
}

func (e *SecretError) Unwrap() error {
	return e.Err
}
