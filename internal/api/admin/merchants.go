package admin

import (
	"net/http"

	"github.com/cobaltpay/backoffice/internal/api/schema"
	"github.com/cobaltpay/backoffice/internal/api/validation"
	"github.com/cobaltpay/backoffice/internal/merchant"
	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// EndpointGetMerchants handles the 'GET /v1/merchants' endpoint
func (service *Service) EndpointGetMerchants(writer http.ResponseWriter, request *http.Request) {
	var validationErrs []*schema.Error

	page, pageErrs := validation.QueryPage(request, "name", paging.OrderAscending)
	validationErrs = append(validationErrs, pageErrs...)

	status, validationErr := validation.QueryEnum(request, "status", false, "",
		string(merchant.StatusActive), string(merchant.StatusSuspended))
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}

	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	filter := &merchant.Filter{}
	if status != "" {
		converted := merchant.Status(status)
		filter.Status = &converted
	}
	if search := request.URL.Query().Get("q"); search != "" {
		filter.Search = &search
	}

	merchants, n, err := service.Storage.Merchants().Get(request.Context(), filter, page)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	service.writer.WriteJSON(writer, schema.BuildPagedResponse(merchants, n))
}

// EndpointGetMerchant handles the 'GET /v1/merchants/{id}' endpoint
func (service *Service) EndpointGetMerchant(writer http.ResponseWriter, request *http.Request) {
	id, err := uuid.Parse(chi.URLParam(request, "id"))
	if err != nil {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
		return
	}

	obj, err := service.Storage.Merchants().GetByID(request.Context(), id)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if obj == nil {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
		return
	}

	service.writer.WriteJSON(writer, obj)
}

type endpointCreateMerchantRequestPayload struct {
	Name  *string `json:"name" required:"true"`
	Email *string `json:"email" required:"true"`
}

// EndpointCreateMerchant handles the 'POST /v1/merchants' endpoint
func (service *Service) EndpointCreateMerchant(writer http.ResponseWriter, request *http.Request) {
	payload, validationErrs, err := schema.UnmarshalBody[endpointCreateMerchantRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	obj, err := service.Storage.Merchants().Create(request.Context(), &merchant.Create{
		Name:  *payload.Name,
		Email: *payload.Email,
	})
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	service.writer.WriteJSONCode(writer, http.StatusCreated, obj)
}

type endpointEditMerchantRequestPayload struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Status *string `json:"status"`
}

// EndpointEditMerchant handles the 'PATCH /v1/merchants/{id}' endpoint
func (service *Service) EndpointEditMerchant(writer http.ResponseWriter, request *http.Request) {
	id, err := uuid.Parse(chi.URLParam(request, "id"))
	if err != nil {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
		return
	}

	// Retrieve the old merchant
	obj, err := service.Storage.Merchants().GetByID(request.Context(), id)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if obj == nil {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
		return
	}

	// Unmarshal and validate the request body
	payload, validationErrs, err := schema.UnmarshalBody[endpointEditMerchantRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if payload.Status != nil && merchant.Status(*payload.Status) != merchant.StatusActive && merchant.Status(*payload.Status) != merchant.StatusSuspended {
		validationErrs = append(validationErrs, &schema.Error{
			Type:    "validation.requestBody.parameter.invalidValue",
			Message: "The request body parameter 'status' is not a valid merchant status.",
			Details: map[string]interface{}{"parameter": "status"},
		})
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	// Construct the update action
	update := &merchant.Update{
		Name:  payload.Name,
		Email: payload.Email,
	}
	if payload.Status != nil {
		converted := merchant.Status(*payload.Status)
		update.Status = &converted
	}

	// Update the merchant and return the new one
	newObj, err := service.Storage.Merchants().Update(request.Context(), obj.ID, update)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	service.writer.WriteJSON(writer, newObj)
}

// EndpointDeleteMerchant handles the 'DELETE /v1/merchants/{id}' endpoint
func (service *Service) EndpointDeleteMerchant(writer http.ResponseWriter, request *http.Request) {
	id, err := uuid.Parse(chi.URLParam(request, "id"))
	if err != nil {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
		return
	}

	obj, err := service.Storage.Merchants().GetByID(request.Context(), id)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if obj == nil {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
		return
	}

	if err := service.Storage.Merchants().Delete(request.Context(), obj.ID); err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	writer.WriteHeader(http.StatusNoContent)
}
