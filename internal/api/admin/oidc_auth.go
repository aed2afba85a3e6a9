package admin

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/cobaltpay/backoffice/internal/random"
	"github.com/cobaltpay/backoffice/internal/user"
	"github.com/coreos/go-oidc/v3/oidc"
)

var (
	sessionTokenCookieName = "session_token"
	csrfCookieName         = "csrf_token"

	stateLength         = 16
	nonceLength         = 16
	cookieNameState     = "login_state"
	cookieLifetimeState = int(time.Hour.Seconds())
)

type oidcLoginFlowState struct {
	ID         string `json:"id"`
	Nonce      string `json:"nonce"`
	Afterwards string `json:"afterwards"`
}

// EndpointOIDCLoginFlow handles the 'GET /v1/auth/oidc/login_flow' endpoint
func (service *Service) EndpointOIDCLoginFlow(writer http.ResponseWriter, request *http.Request) {
	afterwards := request.URL.Query().Get("afterwards")

	// Create and set the login flow state cookie
	state := oidcLoginFlowState{
		ID:         random.String(stateLength, random.CharsetAlphanumeric),
		Nonce:      random.String(nonceLength, random.CharsetAlphanumeric),
		Afterwards: afterwards,
	}
	stateJSON, err := json.Marshal(state)
	if err != nil {
		service.internalError(writer, err)
		return
	}
	http.SetCookie(writer, &http.Cookie{
		Name:     cookieNameState,
		Value:    base64.StdEncoding.EncodeToString(stateJSON),
		MaxAge:   cookieLifetimeState,
		Secure:   service.Config.IsAPISecure(),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	// Redirect the user to the authentication endpoint of the OIDC provider
	http.Redirect(writer, request, service.oidcOAuth2Config.AuthCodeURL(state.ID, oidc.Nonce(state.Nonce)), http.StatusFound)
}

// EndpointOIDCLoginCallback handles the 'GET /v1/auth/oidc/callback' endpoint
func (service *Service) EndpointOIDCLoginCallback(writer http.ResponseWriter, request *http.Request) {
	// Extract the state cookie
	stateCookie, err := request.Cookie(cookieNameState)
	if err != nil {
		service.error(writer, http.StatusBadRequest, "no login flow initiated")
		return
	}
	stateJSON, err := base64.StdEncoding.DecodeString(stateCookie.Value)
	if err != nil {
		service.error(writer, http.StatusBadRequest, "invalid state cookie")
		return
	}
	state := new(oidcLoginFlowState)
	if err := json.Unmarshal(stateJSON, state); err != nil {
		service.error(writer, http.StatusBadRequest, "invalid state cookie")
		return
	}

	// Validate the state ID
	if request.URL.Query().Get("state") != state.ID {
		service.error(writer, http.StatusBadRequest, "states do not match")
		return
	}

	// Unset the state cookie
	unsetCookie(writer, cookieNameState)

	// Retrieve the OAuth2 access token and extract and verify the ID token + nonce
	oauth2Token, err := service.oidcOAuth2Config.Exchange(request.Context(), request.URL.Query().Get("code"))
	if err != nil {
		service.error(writer, http.StatusForbidden, "invalid login code (expired?)")
		return
	}
	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		service.internalError(writer, errors.New("no 'id_token' field in OAuth2 access token; most likely an OIDC provider error"))
		return
	}
	idToken, err := service.oidcIDTokenVerifier.Verify(request.Context(), rawIDToken)
	if err != nil {
		service.internalError(writer, errors.New("received invalid ID token; most likely an OIDC provider error"))
		return
	}
	if idToken.Nonce != state.Nonce {
		service.error(writer, http.StatusForbidden, "nonces do not match")
		return
	}

	// Extract the profile claims and provision the user if they log in for the first time
	claims := struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		SID   string `json:"sid"`
	}{}
	if err := idToken.Claims(&claims); err != nil {
		service.internalError(writer, err)
		return
	}
	obj, err := service.Storage.Users().GetByID(request.Context(), idToken.Subject)
	if err != nil {
		service.internalError(writer, err)
		return
	}
	if obj == nil {
		obj, err = service.Storage.Users().Create(request.Context(), &user.Create{
			ID:          idToken.Subject,
			DisplayName: claims.Name,
			Email:       claims.Email,
			Permissions: user.DefaultPermissions(),
		})
		if err != nil {
			service.internalError(writer, err)
			return
		}
	}

	// Create the session and hand its token plus the CSRF token to the client.
	// The session cookie is HTTP-only; the CSRF cookie has to be readable so the
	// client can mirror it into the CSRF header.
	csrfToken := service.csrf.IssueToken(claims.SID)
	expires := time.Now().Unix() + service.Config.SessionLifetime
	rawToken, err := service.sessionStorage.Create(request.Context(), obj.ID, claims.SID, csrfToken, expires)
	if err != nil {
		service.internalError(writer, err)
		return
	}
	http.SetCookie(writer, &http.Cookie{
		Name:     sessionTokenCookieName,
		Value:    rawToken,
		Secure:   service.Config.IsAPISecure(),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(writer, &http.Cookie{
		Name:     csrfCookieName,
		Value:    csrfToken,
		Secure:   service.Config.IsAPISecure(),
		HttpOnly: false,
		SameSite: http.SameSiteStrictMode,
	})

	// Redirect the user to the URL specified on login flow initiating
	http.Redirect(writer, request, state.Afterwards, http.StatusFound)
}

// EndpointLogout handles the 'POST /v1/auth/logout' endpoint
func (service *Service) EndpointLogout(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(sessionTokenCookieName)
	if err == nil {
		if err := service.sessionStorage.TerminateByRawToken(request.Context(), cookie.Value); err != nil {
			service.writer.WriteInternalError(writer, err)
			return
		}
	}
	unsetCookie(writer, sessionTokenCookieName)
	unsetCookie(writer, csrfCookieName)
	writer.WriteHeader(http.StatusNoContent)
}
