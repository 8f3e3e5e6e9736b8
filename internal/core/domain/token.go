package domain

// TokenType distinguishes the two halves of an issued pair. A refresh token
// cannot be presented where an access token is expected, and vice versa.
type TokenType string

const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
)

// TokenPair is the result of a successful login or set-initial-password.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
