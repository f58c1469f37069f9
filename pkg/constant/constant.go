package constant

const (
	DefaultTokenType = "Bearer"
	DefaultUserRole  = "user"
	AdminRole        = "admin"
)
