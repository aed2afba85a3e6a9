package admin

import (
	"context"
	"net/http"

	"github.com/cobaltpay/backoffice/internal/accesslog"
	"github.com/cobaltpay/backoffice/internal/api/admin/session"
	"github.com/cobaltpay/backoffice/internal/api/admin/session/storage/inmem"
	"github.com/cobaltpay/backoffice/internal/api/schema"
	"github.com/cobaltpay/backoffice/internal/config"
	"github.com/cobaltpay/backoffice/internal/function"
	"github.com/cobaltpay/backoffice/internal/storage"
	"github.com/cobaltpay/backoffice/internal/user"
	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// Service represents the back office admin API service
type Service struct {
	server *http.Server

	Config *config.Config

	Storage storage.Driver

	// Recorder buffers access log entries; a repeating task flushes it periodically
	Recorder *accesslog.Recorder

	oidcOAuth2Config    *oauth2.Config
	oidcProvider        *oidc.Provider
	oidcIDTokenVerifier *oidc.IDTokenVerifier
	sessionStorage      session.Storage
	csrf                *CSRFManager

	writer *schema.Writer
}

// SessionStorage exposes the session storage, for example to schedule an expiration sweep task
func (service *Service) SessionStorage() session.Storage {
	return service.sessionStorage
}

// Startup starts up the back office admin API
func (service *Service) Startup() error {
	// Create the HTTP schema writer
	service.writer = &schema.Writer{
		InternalErrorHook: func(err error) {
			log.Error().Err(err).Msg("the admin API experienced an unexpected error")
		},
	}

	// Create the HTTP router
	router := chi.NewRouter()
	router.Use(middleware.RedirectSlashes)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{service.Config.APIAllowedOrigin},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	router.NotFound(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
	})
	router.MethodNotAllowed(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteErrors(writer, http.StatusMethodNotAllowed, schema.ErrMethodNotAllowed)
	})

	// Create the OIDC provider & ID token verifier
	oidcProvider, err := oidc.NewProvider(context.Background(), service.Config.OIDCProviderURL)
	if err != nil {
		return err
	}
	service.oidcProvider = oidcProvider
	service.oidcIDTokenVerifier = oidcProvider.Verifier(&oidc.Config{
		ClientID: service.Config.OIDCClientID,
	})

	// Create the OAuth2 config
	service.oidcOAuth2Config = &oauth2.Config{
		ClientID:     service.Config.OIDCClientID,
		ClientSecret: service.Config.OIDCClientSecret,
		Endpoint:     oidcProvider.Endpoint(),
		RedirectURL:  service.Config.APIBaseAddress + "/v1/auth/oidc/callback",
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}

	// Create the session storage and the CSRF manager
	sessionStorage, err := inmem.New()
	if err != nil {
		return err
	}
	service.sessionStorage = sessionStorage
	service.csrf = NewCSRFManager(service.Config.CSRFSecret)

	// Shorthands for the standard middleware chains
	authed := func(end http.HandlerFunc, extra ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
		chain := append([]func(http.HandlerFunc) http.HandlerFunc{
			service.MiddlewareVerifySession,
			service.MiddlewareFetchUser,
			service.MiddlewareRecordAccess,
		}, extra...)
		return withMiddlewares(end, chain...)
	}

	// Register the OIDC authentication endpoints
	router.Get("/v1/auth/oidc/login_flow", service.EndpointOIDCLoginFlow)
	router.Get("/v1/auth/oidc/callback", service.EndpointOIDCLoginCallback)
	router.Post("/v1/auth/logout", authed(service.EndpointLogout))

	// Register the user controller endpoints
	router.Get("/v1/me", authed(service.EndpointGetSelfUser))
	router.Get("/v1/users", authed(service.EndpointGetUsers, service.MiddlewareCheckAdmin))
	router.Get("/v1/users/roles", authed(service.EndpointGetRoles, service.MiddlewareCheckAdmin))
	router.Get("/v1/users/{id}", authed(service.EndpointGetUser, service.MiddlewareCheckAdmin))
	router.Patch("/v1/users/{id}", authed(service.EndpointEditUser, service.MiddlewareCheckAdmin, service.MiddlewareVerifyCSRF))
	router.Delete("/v1/users/{id}", authed(service.EndpointDeleteUser, service.MiddlewareCheckAdmin, service.MiddlewareVerifyCSRF))

	// Register the merchant controller endpoints
	router.Get("/v1/merchants", authed(service.EndpointGetMerchants, service.MiddlewareRequirePermission(user.PermissionViewMerchants)))
	router.Get("/v1/merchants/{id}", authed(service.EndpointGetMerchant, service.MiddlewareRequirePermission(user.PermissionViewMerchants)))
	router.Post("/v1/merchants", authed(service.EndpointCreateMerchant, service.MiddlewareRequirePermission(user.PermissionManageMerchants), service.MiddlewareVerifyCSRF))
	router.Patch("/v1/merchants/{id}", authed(service.EndpointEditMerchant, service.MiddlewareRequirePermission(user.PermissionManageMerchants), service.MiddlewareVerifyCSRF))
	router.Delete("/v1/merchants/{id}", authed(service.EndpointDeleteMerchant, service.MiddlewareRequirePermission(user.PermissionManageMerchants), service.MiddlewareVerifyCSRF))

	// Register the transaction controller endpoints
	router.Get("/v1/transactions", authed(service.EndpointGetTransactions, service.MiddlewareRequirePermission(user.PermissionViewTransactions)))
	router.Get("/v1/transactions/{id}", authed(service.EndpointGetTransaction, service.MiddlewareRequirePermission(user.PermissionViewTransactions)))
	router.Post("/v1/transactions", authed(service.EndpointCreateTransaction, service.MiddlewareRequirePermission(user.PermissionManageTransactions), service.MiddlewareVerifyCSRF))
	router.Patch("/v1/transactions/{id}/status", authed(service.EndpointEditTransactionStatus, service.MiddlewareRequirePermission(user.PermissionManageTransactions), service.MiddlewareVerifyCSRF))

	// Register the account transaction controller endpoints
	router.Get("/v1/account_transactions", authed(service.EndpointGetAccountTransactions, service.MiddlewareRequirePermission(user.PermissionViewTransactions)))
	router.Get("/v1/account_transactions/{id}", authed(service.EndpointGetAccountTransaction, service.MiddlewareRequirePermission(user.PermissionViewTransactions)))

	// Register the commission controller endpoints
	router.Get("/v1/commission_logs", authed(service.EndpointGetCommissionLogs, service.MiddlewareRequirePermission(user.PermissionViewCommissions)))
	router.Get("/v1/commission_logs/unsettled_totals", authed(service.EndpointGetUnsettledTotals, service.MiddlewareRequirePermission(user.PermissionViewCommissions)))
	router.Get("/v1/settlements", authed(service.EndpointGetSettlements, service.MiddlewareRequirePermission(user.PermissionViewCommissions)))
	router.Get("/v1/settlements/{id}", authed(service.EndpointGetSettlement, service.MiddlewareRequirePermission(user.PermissionViewCommissions)))
	router.Post("/v1/settlements", authed(service.EndpointCreateSettlement, service.MiddlewareRequirePermission(user.PermissionManageSettlements), service.MiddlewareVerifyCSRF))
	router.Patch("/v1/settlements/{id}/status", authed(service.EndpointEditSettlementStatus, service.MiddlewareRequirePermission(user.PermissionManageSettlements), service.MiddlewareVerifyCSRF))

	// Register the access log controller endpoints
	router.Get("/v1/access_logs", authed(service.EndpointGetAccessLogs, service.MiddlewareRequirePermission(user.PermissionViewAccessLogs)))

	// Register the notification controller endpoints
	router.Get("/v1/notifications", authed(service.EndpointGetNotifications))
	router.Get("/v1/notifications/unread_count", authed(service.EndpointGetUnreadNotificationCount))
	router.Post("/v1/notifications/read_all", authed(service.EndpointMarkAllNotificationsRead, service.MiddlewareVerifyCSRF))
	router.Post("/v1/notifications/{id}/read", authed(service.EndpointMarkNotificationRead, service.MiddlewareVerifyCSRF))
	router.Delete("/v1/notifications/{id}", authed(service.EndpointDeleteNotification, service.MiddlewareVerifyCSRF))

	// Register the reference data controller endpoints
	router.Get("/v1/banks", authed(service.EndpointGetBanks))
	router.Get("/v1/currencies", authed(service.EndpointGetCurrencies))
	router.Get("/v1/methods", authed(service.EndpointGetMethods))

	// Start up the server
	server := &http.Server{
		Addr:    service.Config.APIListenAddress,
		Handler: router,
	}
	service.server = server
	return server.ListenAndServe()
}

// Shutdown shuts down the back office admin API
func (service *Service) Shutdown() {
	if service.server != nil {
		service.server.Close()
		service.server = nil
	}
}

func withMiddlewares(end http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	return function.Nest(end, middlewares...)
}
