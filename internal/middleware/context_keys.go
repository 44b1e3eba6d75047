package middleware

// contextKey is the type of the keys this package stores in Gin and request contexts.
// Using a custom type prevents collisions.
type contextKey string

const (
	// loggerKey is the key used to store the request-scoped logger.
	loggerKey = contextKey("logger")
	// cacheStatusKey records whether the response cache served the request.
	cacheStatusKey = contextKey("cacheStatus")
)
