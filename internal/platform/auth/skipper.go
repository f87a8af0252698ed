package auth

// publicPaths lists URL paths that bypass authentication. These are
// infrastructure endpoints that must be reachable without credentials.
var publicPaths = map[string]bool{
	"/health":    true,
	"/health/db": true,
}

// IsPublicPath reports whether the path is exempt from authentication.
func IsPublicPath(path string) bool {
	return publicPaths[path]
}
