package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/paperstack/docshare/services"
	"github.com/paperstack/docshare/utils"
)

// WriteServiceError maps service and repository failures to HTTP responses.
// The taxonomy: not found 404, ownership/visibility violations 401, role
// gate 403, validation 400 with field details. Anything unclassified is a
// 400 carrying the underlying error message; failures are terminal for the
// request and never retried.
func WriteServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var validationErr *utils.ValidationError
	if errors.As(err, &validationErr) {
		details := make(map[string]interface{}, len(validationErr.Fields))
		for field, msg := range validationErr.Fields {
			details[field] = msg
		}
		_ = utils.WriteBadRequest(w, validationErr.Message, details)
		return
	}

	var domainErr *services.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Type {
		case services.ErrorTypeNotFound:
			_ = utils.WriteNotFound(w, domainErr.Message)
		case services.ErrorTypeUnauthorized:
			_ = utils.WriteUnauthorized(w, domainErr.Message)
		case services.ErrorTypeForbidden:
			_ = utils.WriteForbidden(w, domainErr.Message)
		case services.ErrorTypeValidation:
			_ = utils.WriteBadRequest(w, domainErr.Message, domainErr.Details)
		default:
			logger.Error("internal error", zap.Error(err))
			_ = utils.WriteInternalServerError(w, domainErr.Message)
		}
		return
	}

	logger.Warn("unclassified failure", zap.Error(err))
	_ = utils.WriteBadRequest(w, err.Error(), nil)
}
