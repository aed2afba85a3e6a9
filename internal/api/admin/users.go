package admin

import (
	"net/http"

	"github.com/cobaltpay/backoffice/internal/api/schema"
	"github.com/cobaltpay/backoffice/internal/api/validation"
	"github.com/cobaltpay/backoffice/internal/bitflag"
	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/cobaltpay/backoffice/internal/user"
	"github.com/go-chi/chi/v5"
)

// EndpointGetUsers handles the 'GET /v1/users' endpoint
func (service *Service) EndpointGetUsers(writer http.ResponseWriter, request *http.Request) {
	page, validationErrs := validation.QueryPage(request, "display_name", paging.OrderAscending)
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	users, n, err := service.Storage.Users().Get(request.Context(), page)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	service.writer.WriteJSON(writer, schema.BuildPagedResponse(users, n))
}

// EndpointGetUser handles the 'GET /v1/users/{id}' endpoint
func (service *Service) EndpointGetUser(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	obj, err := service.Storage.Users().GetByID(request.Context(), id)
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

type endpointEditUserRequestPayload struct {
	DisplayName *string            `json:"display_name"`
	Permissions *bitflag.Container `json:"permissions"`
	Restricted  *bool              `json:"restricted"`
	Admin       *bool              `json:"admin"`
}

// EndpointEditUser handles the 'PATCH /v1/users/{id}' endpoint
func (service *Service) EndpointEditUser(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	// Retrieve the old user
	obj, err := service.Storage.Users().GetByID(request.Context(), id)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if obj == nil {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
		return
	}

	// Unmarshal and validate the request body
	payload, validationErrs, err := schema.UnmarshalBody[endpointEditUserRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	// Update the user and return the new one
	newObj, err := service.Storage.Users().Update(request.Context(), obj.ID, &user.Update{
		DisplayName: payload.DisplayName,
		Permissions: payload.Permissions,
		Restricted:  payload.Restricted,
		Admin:       payload.Admin,
	})
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	service.writer.WriteJSON(writer, newObj)
}

// EndpointDeleteUser handles the 'DELETE /v1/users/{id}' endpoint
func (service *Service) EndpointDeleteUser(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	obj, err := service.Storage.Users().GetByID(request.Context(), id)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if obj == nil {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
		return
	}

	if err := service.Storage.Users().Delete(request.Context(), obj.ID); err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if err := service.sessionStorage.TerminateByUserID(request.Context(), obj.ID); err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	writer.WriteHeader(http.StatusNoContent)
}

// EndpointGetRoles handles the 'GET /v1/users/roles' endpoint
func (service *Service) EndpointGetRoles(writer http.ResponseWriter, request *http.Request) {
	service.writer.WriteJSON(writer, user.Roles())
}

// EndpointGetSelfUser handles the 'GET /v1/me' endpoint
func (service *Service) EndpointGetSelfUser(writer http.ResponseWriter, request *http.Request) {
	obj := request.Context().Value(contextValueUser).(*user.User)
	service.writer.WriteJSON(writer, obj)
}
