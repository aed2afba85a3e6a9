package admin

import (
	"net/http"

	"github.com/cobaltpay/backoffice/internal/api/schema"
	"github.com/cobaltpay/backoffice/internal/api/validation"
	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/cobaltpay/backoffice/internal/transaction"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// EndpointGetTransactions handles the 'GET /v1/transactions' endpoint.
// Besides the standard paging parameters it accepts 'kind', 'status', 'merchantId', 'methodId',
// 'currencyId', 'reference' (exact), 'q' (substring) and the 'start'/'end' timestamp bounds.
func (service *Service) EndpointGetTransactions(writer http.ResponseWriter, request *http.Request) {
	var validationErrs []*schema.Error

	page, pageErrs := validation.QueryPage(request, "created_at", paging.OrderDescending)
	validationErrs = append(validationErrs, pageErrs...)

	kind, validationErr := validation.QueryEnum(request, "kind", false, "",
		string(transaction.KindPayment), string(transaction.KindWithdrawal), string(transaction.KindRefund))
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}
	status, validationErr := validation.QueryEnum(request, "status", false, "",
		string(transaction.StatusPending), string(transaction.StatusCompleted),
		string(transaction.StatusFailed), string(transaction.StatusCancelled))
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}
	merchantID, validationErr := validation.QueryUUID(request, "merchantId", false)
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}
	methodID, validationErr := validation.QueryUUID(request, "methodId", false)
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

	filter := &transaction.Filter{
		MerchantID:    merchantID,
		MethodID:      methodID,
		CurrencyID:    currencyID,
		CreatedAfter:  start,
		CreatedBefore: end,
	}
	if kind != "" {
		converted := transaction.Kind(kind)
		filter.Kind = &converted
	}
	if status != "" {
		converted := transaction.Status(status)
		filter.Status = &converted
	}
	if reference := request.URL.Query().Get("reference"); reference != "" {
		filter.Reference = &reference
	}
	if search := request.URL.Query().Get("q"); search != "" {
		filter.Search = &search
	}

	transactions, n, err := service.Storage.Transactions().Get(request.Context(), filter, page)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	service.writer.WriteJSON(writer, schema.BuildPagedResponse(transactions, n))
}

// EndpointGetTransaction handles the 'GET /v1/transactions/{id}' endpoint
func (service *Service) EndpointGetTransaction(writer http.ResponseWriter, request *http.Request) {
	id, err := uuid.Parse(chi.URLParam(request, "id"))
	if err != nil {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
		return
	}

	obj, err := service.Storage.Transactions().GetByID(request.Context(), id)
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

type endpointCreateTransactionRequestPayload struct {
	Kind       *string `json:"kind" required:"true"`
	MerchantID *string `json:"merchant_id" required:"true"`
	MethodID   *string `json:"method_id" required:"true"`
	CurrencyID *string `json:"currency_id" required:"true"`
	Amount     *int64  `json:"amount" required:"true" min:"1"`
	Reference  *string `json:"reference" required:"true"`
}

// EndpointCreateTransaction handles the 'POST /v1/transactions' endpoint
func (service *Service) EndpointCreateTransaction(writer http.ResponseWriter, request *http.Request) {
	payload, validationErrs, err := schema.UnmarshalBody[endpointCreateTransactionRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	kind := transaction.Kind(*payload.Kind)
	if kind != transaction.KindPayment && kind != transaction.KindWithdrawal && kind != transaction.KindRefund {
		service.error(writer, http.StatusBadRequest, "invalid transaction kind")
		return
	}
	merchantID, err := uuid.Parse(*payload.MerchantID)
	if err != nil {
		service.error(writer, http.StatusBadRequest, "invalid merchant ID")
		return
	}
	methodID, err := uuid.Parse(*payload.MethodID)
	if err != nil {
		service.error(writer, http.StatusBadRequest, "invalid method ID")
		return
	}
	currencyID, err := uuid.Parse(*payload.CurrencyID)
	if err != nil {
		service.error(writer, http.StatusBadRequest, "invalid currency ID")
		return
	}

	obj, err := service.Storage.Transactions().Create(request.Context(), &transaction.Create{
		Kind:       kind,
		MerchantID: merchantID,
		MethodID:   methodID,
		CurrencyID: currencyID,
		Amount:     *payload.Amount,
		Reference:  *payload.Reference,
	})
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	service.writer.WriteJSONCode(writer, http.StatusCreated, obj)
}

type endpointEditTransactionStatusRequestPayload struct {
	Status *string `json:"status" required:"true"`
}

// EndpointEditTransactionStatus handles the 'PATCH /v1/transactions/{id}/status' endpoint
func (service *Service) EndpointEditTransactionStatus(writer http.ResponseWriter, request *http.Request) {
	id, err := uuid.Parse(chi.URLParam(request, "id"))
	if err != nil {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
		return
	}

	obj, err := service.Storage.Transactions().GetByID(request.Context(), id)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if obj == nil {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
		return
	}

	payload, validationErrs, err := schema.UnmarshalBody[endpointEditTransactionStatusRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	status := transaction.Status(*payload.Status)
	if status != transaction.StatusPending && status != transaction.StatusCompleted &&
		status != transaction.StatusFailed && status != transaction.StatusCancelled {
		service.error(writer, http.StatusBadRequest, "invalid transaction status")
		return
	}

	newObj, err := service.Storage.Transactions().UpdateStatus(request.Context(), obj.ID, status)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	service.writer.WriteJSON(writer, newObj)
}
