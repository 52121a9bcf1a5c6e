package handlers

import (
	"net/http"

	"github.com/mkravets/storefront-service/internal/domain/session"
)

const (
	cartCookieName    = "cart_id"
	accessCookieName  = "access_token"
	refreshCookieName = "refresh_token"
)

func credentialFromRequest(r *http.Request) session.Credential {
	cred := session.Credential{}

	if c, err := r.Cookie(accessCookieName); err == nil {
		cred.AccessToken = c.Value
	}
	if c, err := r.Cookie(refreshCookieName); err == nil {
		cred.RefreshToken = c.Value
	}

	return cred
}

func setCredentialCookies(w http.ResponseWriter, cred session.Credential) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessCookieName,
		Value:    cred.AccessToken,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    cred.RefreshToken,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearCredentialCookies overwrites both token cookies with empty values
// rather than merely deleting them.
func clearCredentialCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
