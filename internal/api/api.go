package api

import (
	"errors"
	"net/http"

	"github.com/cobaltpay/backoffice/internal/accesslog"
	"github.com/cobaltpay/backoffice/internal/api/admin"
	"github.com/cobaltpay/backoffice/internal/api/admin/session"
	"github.com/cobaltpay/backoffice/internal/config"
	"github.com/cobaltpay/backoffice/internal/storage"
)

// Service represents the back office API service
type Service struct {
	Config   *config.Config
	Storage  storage.Driver
	Recorder *accesslog.Recorder
	admin    *admin.Service
}

// Startup starts up the back office API
func (service *Service) Startup(errs chan<- error) {
	adminService := &admin.Service{
		Config:   service.Config,
		Storage:  service.Storage,
		Recorder: service.Recorder,
	}
	service.admin = adminService
	go func() {
		if err := adminService.Startup(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()
}

// SessionStorage exposes the session storage of the admin API, for example to schedule an expiration sweep task.
// It returns nil before Startup has been called.
func (service *Service) SessionStorage() session.Storage {
	if service.admin == nil {
		return nil
	}
	return service.admin.SessionStorage()
}

// Shutdown shuts down the back office API
func (service *Service) Shutdown() {
	if service.admin != nil {
		service.admin.Shutdown()
		service.admin = nil
	}
}
