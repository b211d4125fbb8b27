package auth

// HasAnyRole is the authorisation predicate for protected routes: access
// is granted iff the token's role set intersects the allowed set.
//
// A nil claims value (no token presented, or one that failed to decode)
// is the unauthenticated case and never grants access. The check is a pure
// predicate over already-decoded claims; token verification happens before
// this point.
func HasAnyRole(claims *Claims, allowed ...Role) bool {
	if claims == nil || len(allowed) == 0 {
		return false
	}
	for _, have := range claims.Roles {
		for _, want := range allowed {
			if have == want {
				return true
			}
		}
	}
	return false
}
