package admin

import (
	"errors"
	"net/http"

	"github.com/cobaltpay/backoffice/internal/api/schema"
	"github.com/cobaltpay/backoffice/internal/api/validation"
	"github.com/cobaltpay/backoffice/internal/commission"
	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// EndpointGetCommissionLogs handles the 'GET /v1/commission_logs' endpoint
func (service *Service) EndpointGetCommissionLogs(writer http.ResponseWriter, request *http.Request) {
	var validationErrs []*schema.Error

	page, pageErrs := validation.QueryPage(request, "created_at", paging.OrderDescending)
	validationErrs = append(validationErrs, pageErrs...)

	agentID, validationErr := validation.QueryUUID(request, "agentId", false)
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}
	currencyID, validationErr := validation.QueryUUID(request, "currencyId", false)
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}
	settled, validationErr := validation.QueryEnum(request, "settled", false, "", "true", "false")
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

	filter := &commission.LogFilter{
		AgentID:       agentID,
		CurrencyID:    currencyID,
		CreatedAfter:  start,
		CreatedBefore: end,
	}
	if settled != "" {
		converted := settled == "true"
		filter.Settled = &converted
	}

	logs, n, err := service.Storage.Commissions().Logs(request.Context(), filter, page)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	service.writer.WriteJSON(writer, schema.BuildPagedResponse(logs, n))
}

// EndpointGetUnsettledTotals handles the 'GET /v1/commission_logs/unsettled_totals' endpoint
func (service *Service) EndpointGetUnsettledTotals(writer http.ResponseWriter, request *http.Request) {
	totals, err := service.Storage.Commissions().UnsettledTotals(request.Context())
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	service.writer.WriteJSON(writer, totals)
}

// EndpointGetSettlements handles the 'GET /v1/settlements' endpoint
func (service *Service) EndpointGetSettlements(writer http.ResponseWriter, request *http.Request) {
	var validationErrs []*schema.Error

	page, pageErrs := validation.QueryPage(request, "created_at", paging.OrderDescending)
	validationErrs = append(validationErrs, pageErrs...)

	agentID, validationErr := validation.QueryUUID(request, "agentId", false)
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}
	currencyID, validationErr := validation.QueryUUID(request, "currencyId", false)
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}
	status, validationErr := validation.QueryEnum(request, "status", false, "",
		string(commission.SettlementStatusPending), string(commission.SettlementStatusPaid),
		string(commission.SettlementStatusRejected))
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

	filter := &commission.SettlementFilter{
		AgentID:       agentID,
		CurrencyID:    currencyID,
		CreatedAfter:  start,
		CreatedBefore: end,
	}
	if status != "" {
		converted := commission.SettlementStatus(status)
		filter.Status = &converted
	}

	settlements, n, err := service.Storage.Commissions().Settlements(request.Context(), filter, page)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	service.writer.WriteJSON(writer, schema.BuildPagedResponse(settlements, n))
}

// EndpointGetSettlement handles the 'GET /v1/settlements/{id}' endpoint
func (service *Service) EndpointGetSettlement(writer http.ResponseWriter, request *http.Request) {
	id, err := uuid.Parse(chi.URLParam(request, "id"))
	if err != nil {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
		return
	}

	obj, err := service.Storage.Commissions().GetSettlementByID(request.Context(), id)
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

type endpointCreateSettlementRequestPayload struct {
	AgentID    *string `json:"agent_id" required:"true"`
	MethodID   *string `json:"method_id" required:"true"`
	CurrencyID *string `json:"currency_id" required:"true"`
}

// EndpointCreateSettlement handles the 'POST /v1/settlements' endpoint.
// It settles all unsettled commission logs of the agent in the given currency.
// The settlement is rejected when the method settles a different currency or the
// unsettled total does not reach the method's minimum settlement amount.
func (service *Service) EndpointCreateSettlement(writer http.ResponseWriter, request *http.Request) {
	payload, validationErrs, err := schema.UnmarshalBody[endpointCreateSettlementRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	agentID, err := uuid.Parse(*payload.AgentID)
	if err != nil {
		service.error(writer, http.StatusBadRequest, "invalid agent ID")
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

	method, err := service.Storage.RefData().GetMethodByID(request.Context(), methodID)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if method == nil {
		service.error(writer, http.StatusBadRequest, "unknown settlement method")
		return
	}

	logs, err := service.Storage.Commissions().UnsettledLogs(request.Context(), agentID, currencyID)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	total, err := commission.CheckMinimum(logs, method, currencyID)
	if err != nil {
		service.error(writer, http.StatusUnprocessableEntity, err.Error())
		return
	}

	logIDs := make([]uuid.UUID, 0, len(logs))
	for _, log := range logs {
		logIDs = append(logIDs, log.ID)
	}

	obj, err := service.Storage.Commissions().CreateSettlement(request.Context(), &commission.SettlementCreate{
		AgentID:    agentID,
		MethodID:   methodID,
		CurrencyID: currencyID,
		Amount:     total,
		LogIDs:     logIDs,
	})
	if err != nil {
		if errors.Is(err, commission.ErrLogsAlreadySettled) {
			service.error(writer, http.StatusConflict, "some commission logs have already been settled")
			return
		}
		service.writer.WriteInternalError(writer, err)
		return
	}
	service.writer.WriteJSONCode(writer, http.StatusCreated, obj)
}

type endpointEditSettlementStatusRequestPayload struct {
	Status *string `json:"status" required:"true"`
}

// EndpointEditSettlementStatus handles the 'PATCH /v1/settlements/{id}/status' endpoint
func (service *Service) EndpointEditSettlementStatus(writer http.ResponseWriter, request *http.Request) {
	id, err := uuid.Parse(chi.URLParam(request, "id"))
	if err != nil {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
		return
	}

	obj, err := service.Storage.Commissions().GetSettlementByID(request.Context(), id)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if obj == nil {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
		return
	}

	payload, validationErrs, err := schema.UnmarshalBody[endpointEditSettlementStatusRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	status := commission.SettlementStatus(*payload.Status)
	if status != commission.SettlementStatusPending && status != commission.SettlementStatusPaid &&
		status != commission.SettlementStatusRejected {
		service.error(writer, http.StatusBadRequest, "invalid settlement status")
		return
	}

	newObj, err := service.Storage.Commissions().UpdateSettlementStatus(request.Context(), obj.ID, status)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	service.writer.WriteJSON(writer, newObj)
}
