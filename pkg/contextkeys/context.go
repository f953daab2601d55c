package contextkeys

// Keys under which the auth middleware stores token claims in gin.Context.
const (
	UserIDKey      = "userID"
	VerifiedForKey = "verifiedFor"
)
