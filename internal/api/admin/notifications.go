package admin

import (
	"net/http"

	"github.com/cobaltpay/backoffice/internal/api/schema"
	"github.com/cobaltpay/backoffice/internal/api/validation"
	"github.com/cobaltpay/backoffice/internal/notification"
	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/cobaltpay/backoffice/internal/user"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// EndpointGetNotifications handles the 'GET /v1/notifications' endpoint.
// Users only ever see their own notifications.
func (service *Service) EndpointGetNotifications(writer http.ResponseWriter, request *http.Request) {
	obj := request.Context().Value(contextValueUser).(*user.User)

	var validationErrs []*schema.Error

	page, pageErrs := validation.QueryPage(request, "created_at", paging.OrderDescending)
	validationErrs = append(validationErrs, pageErrs...)

	read, validationErr := validation.QueryEnum(request, "read", false, "", "true", "false")
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}

	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	filter := &notification.Filter{
		UserID: &obj.ID,
	}
	if read != "" {
		converted := read == "true"
		filter.Read = &converted
	}

	notifications, n, err := service.Storage.Notifications().Get(request.Context(), filter, page)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	service.writer.WriteJSON(writer, schema.BuildPagedResponse(notifications, n))
}

// EndpointGetUnreadNotificationCount handles the 'GET /v1/notifications/unread_count' endpoint
func (service *Service) EndpointGetUnreadNotificationCount(writer http.ResponseWriter, request *http.Request) {
	obj := request.Context().Value(contextValueUser).(*user.User)

	n, err := service.Storage.Notifications().CountUnread(request.Context(), obj.ID)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	service.writer.WriteJSON(writer, map[string]uint64{"count": n})
}

// EndpointMarkNotificationRead handles the 'POST /v1/notifications/{id}/read' endpoint
func (service *Service) EndpointMarkNotificationRead(writer http.ResponseWriter, request *http.Request) {
	obj := request.Context().Value(contextValueUser).(*user.User)

	id, err := uuid.Parse(chi.URLParam(request, "id"))
	if err != nil {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
		return
	}

	target, err := service.Storage.Notifications().GetByID(request.Context(), id)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if target == nil || target.UserID != obj.ID {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
		return
	}

	newObj, err := service.Storage.Notifications().MarkRead(request.Context(), target.ID)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	service.writer.WriteJSON(writer, newObj)
}

// EndpointMarkAllNotificationsRead handles the 'POST /v1/notifications/read_all' endpoint
func (service *Service) EndpointMarkAllNotificationsRead(writer http.ResponseWriter, request *http.Request) {
	obj := request.Context().Value(contextValueUser).(*user.User)

	n, err := service.Storage.Notifications().MarkAllRead(request.Context(), obj.ID)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	service.writer.WriteJSON(writer, map[string]int64{"marked": n})
}

// EndpointDeleteNotification handles the 'DELETE /v1/notifications/{id}' endpoint
func (service *Service) EndpointDeleteNotification(writer http.ResponseWriter, request *http.Request) {
	obj := request.Context().Value(contextValueUser).(*user.User)

	id, err := uuid.Parse(chi.URLParam(request, "id"))
	if err != nil {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
		return
	}

	target, err := service.Storage.Notifications().GetByID(request.Context(), id)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if target == nil || target.UserID != obj.ID {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
		return
	}

	if err := service.Storage.Notifications().Delete(request.Context(), target.ID); err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	writer.WriteHeader(http.StatusNoContent)
}
