package admin

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/cobaltpay/backoffice/internal/accesslog"
	"github.com/cobaltpay/backoffice/internal/api/admin/session"
	"github.com/cobaltpay/backoffice/internal/api/schema"
	"github.com/cobaltpay/backoffice/internal/bitflag"
	"github.com/cobaltpay/backoffice/internal/user"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type contextValue string

const (
	contextValueSession = contextValue("session")
	contextValueUser    = contextValue("user")
)

// MiddlewareVerifySession makes sure that the requesting client provides a valid session token cookie.
// It injects the session into the request context.
func (service *Service) MiddlewareVerifySession(next http.HandlerFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		cookie, err := request.Cookie(sessionTokenCookieName)
		if err != nil {
			service.writer.WriteErrors(writer, http.StatusUnauthorized, schema.ErrUnauthorized)
			return
		}

		ses, err := service.sessionStorage.GetByRawToken(request.Context(), cookie.Value)
		if err != nil {
			service.writer.WriteInternalError(writer, err)
			return
		}
		if ses == nil || ses.Expires <= time.Now().Unix() {
			unsetCookie(writer, sessionTokenCookieName)
			service.writer.WriteErrors(writer, http.StatusUnauthorized, schema.ErrUnauthorized)
			return
		}

		ctx := context.WithValue(request.Context(), contextValueSession, ses)
		next(writer, request.WithContext(ctx))
	}
}

// MiddlewareFetchUser fetches the user the session in the request context belongs to and injects it
// into the request context. The session middleware has to run before this one.
func (service *Service) MiddlewareFetchUser(next http.HandlerFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		ses := request.Context().Value(contextValueSession).(*session.Session)

		obj, err := service.Storage.Users().GetByID(request.Context(), ses.UserID)
		if err != nil {
			service.writer.WriteInternalError(writer, err)
			return
		}
		if obj == nil {
			unsetCookie(writer, sessionTokenCookieName)
			service.writer.WriteErrors(writer, http.StatusUnauthorized, schema.ErrUnauthorized)
			return
		}

		ctx := context.WithValue(request.Context(), contextValueUser, obj)
		next(writer, request.WithContext(ctx))
	}
}

// MiddlewareRecordAccess records the authenticated request in the access log recorder.
// The user middleware has to run before this one.
func (service *Service) MiddlewareRecordAccess(next http.HandlerFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		if service.Recorder == nil {
			next(writer, request)
			return
		}

		obj := request.Context().Value(contextValueUser).(*user.User)
		wrapped := middleware.NewWrapResponseWriter(writer, request.ProtoMajor)
		next(wrapped, request)

		ip := request.RemoteAddr
		if host, _, err := net.SplitHostPort(request.RemoteAddr); err == nil {
			ip = host
		}
		service.Recorder.Record(&accesslog.Log{
			ID:        uuid.New(),
			UserID:    obj.ID,
			Method:    request.Method,
			Path:      request.URL.Path,
			Status:    wrapped.Status(),
			IP:        ip,
			CreatedAt: time.Now().UTC(),
		})
	}
}

// MiddlewareCheckAdmin makes sure that the requesting user is an admin.
// The user middleware has to run before this one.
func (service *Service) MiddlewareCheckAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		obj := request.Context().Value(contextValueUser).(*user.User)
		if !obj.Admin || obj.Restricted {
			service.writer.WriteErrors(writer, http.StatusForbidden, schema.ErrForbidden)
			return
		}
		next(writer, request)
	}
}

// MiddlewareRequirePermission makes sure that the requesting user holds all the given permissions.
// The user middleware has to run before this one.
func (service *Service) MiddlewareRequirePermission(permissions ...bitflag.Flag) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(writer http.ResponseWriter, request *http.Request) {
			obj := request.Context().Value(contextValueUser).(*user.User)
			if !obj.Can(permissions...) {
				service.writer.WriteErrors(writer, http.StatusForbidden, schema.ErrForbidden)
				return
			}
			next(writer, request)
		}
	}
}

// MiddlewareVerifyCSRF makes sure that mutating requests carry the CSRF token bound to the session.
// The session middleware has to run before this one.
func (service *Service) MiddlewareVerifyCSRF(next http.HandlerFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		ses := request.Context().Value(contextValueSession).(*session.Session)
		if !service.csrf.VerifyToken(ses.CSRFToken, request.Header.Get(CSRFHeaderName)) {
			service.writer.WriteErrors(writer, http.StatusForbidden, &schema.Error{
				Type:    "access.csrf",
				Message: "The CSRF token is missing or does not match the session.",
				Details: map[string]interface{}{},
			})
			return
		}
		next(writer, request)
	}
}

func unsetCookie(writer http.ResponseWriter, name string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Second),
		HttpOnly: true,
	})
}
