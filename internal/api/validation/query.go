package validation

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cobaltpay/backoffice/internal/api/schema"
	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/google/uuid"
)

var (
	errQueryParameterMissing = func(name string) *schema.Error {
		return &schema.Error{
			Type:    "validation.query.parameter.missing",
			Message: fmt.Sprintf("The query parameter '%s' is required but was not present in the request.", name),
			Details: map[string]interface{}{
				"parameter": name,
			},
		}
	}
	errQueryParameterInvalidType = func(name, value, expectedType string) *schema.Error {
		return &schema.Error{
			Type:    "validation.query.parameter.invalidType",
			Message: fmt.Sprintf("The query parameter '%s' ('%s') could not be assigned to the required type (%s).", name, value, expectedType),
			Details: map[string]interface{}{
				"parameter":     name,
				"value":         value,
				"expected_type": expectedType,
			},
		}
	}
	errQueryParameterNumberOutOfRange = func(name string, value, min, max int64) *schema.Error {
		comparison := ""
		if value < min {
			comparison = fmt.Sprintf("%d [given] < %d [min]", value, min)
		} else if value > max {
			comparison = fmt.Sprintf("%d [given] > %d [max]", value, max)
		}

		return &schema.Error{
			Type:    "validation.query.parameter.number.outOfRange",
			Message: fmt.Sprintf("The query parameter '%s' is out of the required range (%s).", name, comparison),
			Details: map[string]interface{}{
				"parameter": name,
				"value":     value,
				"min":       min,
				"max":       max,
			},
		}
	}
	errQueryParameterInvalidValue = func(name, value string, allowed []string) *schema.Error {
		return &schema.Error{
			Type:    "validation.query.parameter.invalidValue",
			Message: fmt.Sprintf("The query parameter '%s' ('%s') is not one of the allowed values (%s).", name, value, strings.Join(allowed, ", ")),
			Details: map[string]interface{}{
				"parameter": name,
				"value":     value,
				"allowed":   allowed,
			},
		}
	}
)

// QueryNumber extracts and validates an integer value out of the query parameters of the given request
func QueryNumber(request *http.Request, key string, required bool, def, min, max int64) (int64, *schema.Error) {
	value := request.URL.Query().Get(key)
	if value == "" {
		if required {
			return 0, errQueryParameterMissing(key)
		}
		return def, nil
	}

	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errQueryParameterInvalidType(key, value, "number")
	}

	if parsed < min || parsed > max {
		return 0, errQueryParameterNumberOutOfRange(key, parsed, min, max)
	}

	return parsed, nil
}

// QueryString extracts a string value out of the query parameters of the given request
func QueryString(request *http.Request, key string, required bool, def string) (string, *schema.Error) {
	value := request.URL.Query().Get(key)
	if value == "" {
		if required {
			return "", errQueryParameterMissing(key)
		}
		return def, nil
	}
	return value, nil
}

// QueryEnum extracts a string value out of the query parameters and checks it against a set of allowed values
func QueryEnum(request *http.Request, key string, required bool, def string, allowed ...string) (string, *schema.Error) {
	value := request.URL.Query().Get(key)
	if value == "" {
		if required {
			return "", errQueryParameterMissing(key)
		}
		return def, nil
	}
	for _, candidate := range allowed {
		if value == candidate {
			return value, nil
		}
	}
	return "", errQueryParameterInvalidValue(key, value, allowed)
}

// QuerySortOrder extracts a sort order ('ASC' or 'DESC') out of the query parameters of the given request
func QuerySortOrder(request *http.Request, key string, def paging.SortOrder) (paging.SortOrder, *schema.Error) {
	value, err := QueryEnum(request, key, false, string(def), string(paging.OrderAscending), string(paging.OrderDescending))
	if err != nil {
		return "", err
	}
	return paging.SortOrder(value), nil
}

// QueryTime extracts and validates an RFC 3339 timestamp out of the query parameters of the given request.
// The returned timestamp is normalized to UTC.
func QueryTime(request *http.Request, key string, required bool) (*time.Time, *schema.Error) {
	value := request.URL.Query().Get(key)
	if value == "" {
		if required {
			return nil, errQueryParameterMissing(key)
		}
		return nil, nil
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, errQueryParameterInvalidType(key, value, "RFC 3339 timestamp")
	}
	utc := parsed.UTC()
	return &utc, nil
}

// QueryUUID extracts and validates a UUID out of the query parameters of the given request
func QueryUUID(request *http.Request, key string, required bool) (*uuid.UUID, *schema.Error) {
	value := request.URL.Query().Get(key)
	if value == "" {
		if required {
			return nil, errQueryParameterMissing(key)
		}
		return nil, nil
	}

	parsed, err := uuid.Parse(value)
	if err != nil {
		return nil, errQueryParameterInvalidType(key, value, "UUID")
	}
	return &parsed, nil
}
