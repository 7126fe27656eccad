package server

import (
	"errors"
	"net/http"

	"mediafs/pkg/log"
	"mediafs/pkg/media"
	"mediafs/pkg/media/pipeline"
	"mediafs/pkg/vpath"

	"github.com/labstack/echo/v4"
)

// response is the envelope every action returns.
type response struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data,omitempty"`
	Filename string      `json:"filename,omitempty"`
	Message  string      `json:"message,omitempty"`
	Error    string      `json:"error,omitempty"`
}

func respondOK(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, response{Success: true})
}

func respondData(ctx echo.Context, data interface{}) error {
	return ctx.JSON(http.StatusOK, response{Success: true, Data: data})
}

// respondError maps a typed engine error to a stable status code and
// message. Unknown errors surface as a generic storage failure; raw error
// text from the OS or the database never reaches the wire.
func respondError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	message := "internal error"

	var (
		traversal   vpath.TraversalError
		notFound    media.NotFoundError
		conflict    media.ConflictError
		protected   media.ProtectedPathError
		validation  media.ValidationError
		badType     pipeline.UnsupportedTypeError
		tooLarge    pipeline.FileTooLargeError
		badContent  pipeline.InvalidContentError
		permission  media.PermissionError
		storage     media.StorageError
		noAuth      notAuthenticatedError
		validationF validationFailure
	)

	switch {
	case errors.As(err, &noAuth):
		status, message = http.StatusUnauthorized, noAuth.Error()
	case errors.As(err, &traversal):
		status, message = http.StatusBadRequest, traversal.Error()
	case errors.As(err, &validation):
		status, message = http.StatusBadRequest, validation.Error()
	case errors.As(err, &validationF):
		status, message = http.StatusBadRequest, validationF.Error()
	case errors.As(err, &badContent):
		status, message = http.StatusBadRequest, badContent.Error()
	case errors.As(err, &badType):
		status, message = http.StatusUnsupportedMediaType, badType.Error()
	case errors.As(err, &tooLarge):
		status, message = http.StatusRequestEntityTooLarge, tooLarge.Error()
	case errors.As(err, &notFound):
		status, message = http.StatusNotFound, notFound.Error()
	case errors.As(err, &conflict):
		status, message = http.StatusConflict, conflict.Error()
	case errors.As(err, &protected):
		status, message = http.StatusForbidden, protected.Error()
	case errors.As(err, &permission):
		status, message = http.StatusForbidden, permission.Error()
	case errors.As(err, &storage):
		status, message = http.StatusInternalServerError, storage.Error()
	default:
		log.Error().Err(err).Msg("Unhandled error")
	}

	return ctx.JSON(status, response{Success: false, Error: message})
}
