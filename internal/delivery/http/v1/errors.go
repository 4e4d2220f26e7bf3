package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/ganttsheet/internal/app"
	"github.com/alexanderramin/ganttsheet/internal/export"
	"github.com/alexanderramin/ganttsheet/internal/ingest"
)

var (
	errInvalidRequestBody = errors.New("invalid request body")
	errMissingFile        = errors.New("multipart field \"file\" is required")
	errUploadTooLarge     = errors.New("uploaded file is too large")
)

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newStatusTextError(status int) apiError {
	return newAPIError(status, http.StatusText(status))
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

// classify maps pipeline errors to API errors. Unknown errors become a 500
// without leaking their text.
func classify(err error) apiError {
	var parseErr *ingest.ParseError
	var ioErr *export.IOError
	switch {
	case errors.As(err, &parseErr):
		return newBadRequestError(parseErr.Error())
	case errors.Is(err, app.ErrUnknownColumn):
		return newBadRequestError(err.Error())
	case errors.Is(err, app.ErrUnknownChartStyle):
		return newAPIError(http.StatusNotFound, err.Error())
	case errors.As(err, &ioErr):
		return newAPIError(http.StatusInternalServerError, "export failed")
	default:
		return newStatusTextError(http.StatusInternalServerError)
	}
}
