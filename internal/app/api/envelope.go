package api

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/nestboard/adminsdk/internal/infrastructure/apperr"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// MetaData is the backend's status block, present on every enveloped response.
type MetaData struct {
	Status        string `json:"status" validate:"required"`
	Message       string `json:"message"`
	AppStatusCode int    `json:"AppStatusCode"`
	Timestamp     string `json:"timestamp"`
}

type Pagination struct {
	Count       int     `json:"count"`
	Next        *string `json:"next"`
	Previous    *string `json:"previous"`
	PageSize    int     `json:"page_size"`
	CurrentPage int     `json:"current_page"`
	TotalPages  int     `json:"total_pages"`
}

// Envelope is the backend's standard response wrapper. Data stays raw until a
// caller decodes it into its own type.
type Envelope struct {
	MetaData   *MetaData           `json:"metaData" validate:"required"`
	Data       json.RawMessage     `json:"data"`
	Pagination *Pagination         `json:"pagination,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
}

var validate = validator.New()

// parseEnvelope turns a transport-success JSON body into a well-formed
// envelope or a typed error. A body that is not envelope-shaped is wrapped
// into a synthetic success envelope; a literally-null payload is a protocol
// violation regardless of the HTTP status.
func parseEnvelope(body []byte, httpStatus int, now time.Time) (*Envelope, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("api.parseEnvelope: %w", apperr.ErrEmptyResponse(httpStatus))
	}

	var probe struct {
		MetaData *MetaData `json:"metaData"`
	}
	if err := json.Unmarshal(trimmed, &probe); err != nil || probe.MetaData == nil {
		// Bare JSON body: synthesize a minimal success envelope around it.
		return &Envelope{
			MetaData: &MetaData{
				Status:        StatusSuccess,
				AppStatusCode: httpStatus,
				Timestamp:     now.Format(time.RFC3339),
			},
			Data: json.RawMessage(trimmed),
		}, nil
	}

	var env Envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("api.parseEnvelope: %w",
			apperr.ErrEmptyResponse(httpStatus).WithDetail(err.Error()))
	}
	if err := validate.Struct(&env); err != nil {
		return nil, fmt.Errorf("api.parseEnvelope: %w",
			apperr.ErrEmptyResponse(httpStatus).WithDetail(err.Error()))
	}

	if isNullData(env.Data) {
		code := env.MetaData.AppStatusCode
		if code == 0 {
			code = httpStatus
		}
		err := apperr.ErrEmptyResponse(code)
		if env.MetaData.Message != "" {
			err = err.WithUserMessage(env.MetaData.Message)
		}
		return nil, fmt.Errorf("api.parseEnvelope: %w", err)
	}

	return &env, nil
}

func isNullData(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// DecodeData unmarshals the envelope payload into T.
func DecodeData[T any](env *Envelope) (T, error) {
	var value T
	if env == nil || isNullData(env.Data) {
		return value, fmt.Errorf("api.DecodeData: %w", apperr.ErrEmptyResponse(apperr.CodeProtocol))
	}
	if err := json.Unmarshal(env.Data, &value); err != nil {
		return value, fmt.Errorf("api.DecodeData: %w",
			apperr.ErrEmptyResponse(apperr.CodeProtocol).WithDetail(err.Error()))
	}

	return value, nil
}
