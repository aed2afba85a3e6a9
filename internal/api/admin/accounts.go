package admin

import (
	"net/http"

	"github.com/cobaltpay/backoffice/internal/account"
	"github.com/cobaltpay/backoffice/internal/api/schema"
	"github.com/cobaltpay/backoffice/internal/api/validation"
	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// EndpointGetAccountTransactions handles the 'GET /v1/account_transactions' endpoint
func (service *Service) EndpointGetAccountTransactions(writer http.ResponseWriter, request *http.Request) {
	var validationErrs []*schema.Error

	page, pageErrs := validation.QueryPage(request, "created_at", paging.OrderDescending)
	validationErrs = append(validationErrs, pageErrs...)

	kind, validationErr := validation.QueryEnum(request, "kind", false, "",
		string(account.KindCredit), string(account.KindDebit))
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}
	merchantID, validationErr := validation.QueryUUID(request, "merchantId", false)
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}
	currencyID, validationErr := validation.QueryUUID(request, "currencyId", false)
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

	filter := &account.Filter{
		MerchantID:    merchantID,
		CurrencyID:    currencyID,
		CreatedAfter:  start,
		CreatedBefore: end,
	}
	if kind != "" {
		converted := account.Kind(kind)
		filter.Kind = &converted
	}
	if search := request.URL.Query().Get("q"); search != "" {
		filter.Search = &search
	}

	transactions, n, err := service.Storage.Accounts().Get(request.Context(), filter, page)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	service.writer.WriteJSON(writer, schema.BuildPagedResponse(transactions, n))
}

// EndpointGetAccountTransaction handles the 'GET /v1/account_transactions/{id}' endpoint
func (service *Service) EndpointGetAccountTransaction(writer http.ResponseWriter, request *http.Request) {
	id, err := uuid.Parse(chi.URLParam(request, "id"))
	if err != nil {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
		return
	}

	obj, err := service.Storage.Accounts().GetByID(request.Context(), id)
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
