package driven

// SecretResolver turns configured credential values into secrets.
type SecretResolver interface {
	// Resolve returns the secret for value, following references.
	Resolve(value string) (string, error)

	// IsReference reports whether value points elsewhere rather than being
	// the secret itself.
	IsReference(value string) bool
}
