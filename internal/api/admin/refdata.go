package admin

import (
	"net/http"
)

// EndpointGetBanks handles the 'GET /v1/banks' endpoint
func (service *Service) EndpointGetBanks(writer http.ResponseWriter, request *http.Request) {
	banks, err := service.Storage.RefData().Banks(request.Context())
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	service.writer.WriteJSON(writer, banks)
}

// EndpointGetCurrencies handles the 'GET /v1/currencies' endpoint
func (service *Service) EndpointGetCurrencies(writer http.ResponseWriter, request *http.Request) {
	currencies, err := service.Storage.RefData().Currencies(request.Context())
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	service.writer.WriteJSON(writer, currencies)
}

// EndpointGetMethods handles the 'GET /v1/methods' endpoint
func (service *Service) EndpointGetMethods(writer http.ResponseWriter, request *http.Request) {
	methods, err := service.Storage.RefData().Methods(request.Context())
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	service.writer.WriteJSON(writer, methods)
}
