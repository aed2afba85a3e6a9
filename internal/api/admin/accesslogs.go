package admin

import (
	"net/http"

	"github.com/cobaltpay/backoffice/internal/accesslog"
	"github.com/cobaltpay/backoffice/internal/api/schema"
	"github.com/cobaltpay/backoffice/internal/api/validation"
	"github.com/cobaltpay/backoffice/internal/paging"
)

// EndpointGetAccessLogs handles the 'GET /v1/access_logs' endpoint
func (service *Service) EndpointGetAccessLogs(writer http.ResponseWriter, request *http.Request) {
	var validationErrs []*schema.Error

	page, pageErrs := validation.QueryPage(request, "created_at", paging.OrderDescending)
	validationErrs = append(validationErrs, pageErrs...)

	method, validationErr := validation.QueryEnum(request, "method", false, "",
		http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete)
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}
	status, validationErr := validation.QueryNumber(request, "status", false, 0, 100, 599)
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}
	start, validationErr := validation.QueryTime(request, "start", false)
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}
	end, validationErr := validation.QueryTime(request, "end", false)
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}

	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	filter := &accesslog.Filter{
		CreatedAfter:  start,
		CreatedBefore: end,
	}
	if method != "" {
		filter.Method = &method
	}
	if status != 0 {
		converted := int(status)
		filter.Status = &converted
	}
	if userID := request.URL.Query().Get("userId"); userID != "" {
		filter.UserID = &userID
	}
	if search := request.URL.Query().Get("q"); search != "" {
		filter.Search = &search
	}

	logs, n, err := service.Storage.AccessLogs().Get(request.Context(), filter, page)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	service.writer.WriteJSON(writer, schema.BuildPagedResponse(logs, n))
}
