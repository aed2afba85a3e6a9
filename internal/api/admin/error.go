package admin

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

func (service *Service) error(writer http.ResponseWriter, status int, message string) {
	response, _ := json.Marshal(map[string]interface{}{
		"status":  status,
		"message": message,
	})
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	writer.Write(response)
}

func (service *Service) internalError(writer http.ResponseWriter, err error) {
	service.error(writer, http.StatusInternalServerError, "internal error")
	log.Error().Err(err).Msg("the admin API experienced an unexpected error")
}
