package auth

// The token and session shaping steps are named pure functions with explicit
// input records, composed by the handlers: sign-in runs ShapeToken with an
// identity, refresh runs it without one, and every session materialization
// runs ShapeSession over the validated claims.

// TokenIn is the input to token shaping. Identity is non-nil only on the
// initial sign-in.
type TokenIn struct {
	Claims   *Claims
	Identity *Identity
}

// SessionIn is the input to session shaping.
type SessionIn struct {
	Session *Session
	Claims  *Claims
}

// ShapeToken copies the identity claims into the token on initial sign-in.
// On a refresh (no identity) the existing claims pass through untouched, so
// the role captured at sign-in survives without a storage read.
func ShapeToken(in TokenIn) *Claims {
	claims := in.Claims
	if claims == nil {
		claims = &Claims{}
	}

	if in.Identity != nil {
		claims.Subject = in.Identity.ID
		claims.Role = in.Identity.Role
		claims.FirstName = in.Identity.FirstName
		claims.LastName = in.Identity.LastName
		claims.Email = in.Identity.Email
	}

	return claims
}

// ShapeSession materializes the session view from token claims. A token
// carrying both a subject and a role populates the session's user identity;
// otherwise those fields stay unset.
func ShapeSession(in SessionIn) *Session {
	session := in.Session
	if session == nil {
		session = &Session{}
	}

	claims := in.Claims
	if claims == nil {
		return session
	}

	if claims.ExpiresAt != nil {
		session.Expires = claims.ExpiresAt.Time
	}

	if claims.Subject != "" && claims.Role != "" {
		session.User.ID = claims.Subject
		session.User.Role = claims.Role
		session.User.FirstName = claims.FirstName
		session.User.LastName = claims.LastName
		session.User.Email = claims.Email
	}

	return session
}
