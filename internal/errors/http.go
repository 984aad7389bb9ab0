package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// categoryFor maps HTTP status codes to failure categories.
func categoryFor(statusCode int) Category {
	switch {
	case statusCode == http.StatusUnauthorized:
		return Unauthorized
	case statusCode == http.StatusForbidden:
		return Forbidden
	case statusCode == http.StatusNotFound:
		return NotFound
	case statusCode == http.StatusBadRequest, statusCode == http.StatusUnprocessableEntity:
		return Validation
	default:
		return Server
	}
}

// NewHTTPError builds the typed failure for a non-2xx response, decoding the
// backend's detail payload when it has one.
func NewHTTPError(operation string, statusCode int, body []byte) *APIError {
	e := &APIError{
		Operation:  operation,
		Category:   categoryFor(statusCode),
		StatusCode: statusCode,
		Body:       string(body),
		Underlying: fmt.Errorf("%s failed: HTTP %d", operation, statusCode),
	}
	e.Message, e.Fields = parseDetail(body)
	return e
}

// NewNetworkError wraps a failure where no HTTP response was received.
func NewNetworkError(operation string, err error) *APIError {
	return &APIError{
		Operation:  operation,
		Category:   Transport,
		Underlying: fmt.Errorf("%s network error: %w", operation, err),
	}
}

// detailItem covers both {field,message} and FastAPI's {loc,msg,type}.
type detailItem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Loc     []any  `json:"loc"`
	Msg     string `json:"msg"`
}

func parseDetail(body []byte) (string, []FieldError) {
	if len(body) == 0 {
		return "", nil
	}
	var envelope struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
		Errors  json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return strings.TrimSpace(string(body)), nil
	}
	for _, raw := range []json.RawMessage{envelope.Detail, envelope.Errors} {
		if len(raw) == 0 {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s, nil
		}
		var items []detailItem
		if err := json.Unmarshal(raw, &items); err == nil {
			return "", toFieldErrors(items)
		}
	}
	return envelope.Message, nil
}

func toFieldErrors(items []detailItem) []FieldError {
	out := make([]FieldError, 0, len(items))
	for _, it := range items {
		fe := FieldError{Field: it.Field, Message: it.Message}
		if fe.Message == "" {
			fe.Message = it.Msg
		}
		if fe.Field == "" && len(it.Loc) > 0 {
			// FastAPI prefixes the location with "body"/"query".
			fe.Field = fmt.Sprint(it.Loc[len(it.Loc)-1])
		}
		out = append(out, fe)
	}
	return out
}
