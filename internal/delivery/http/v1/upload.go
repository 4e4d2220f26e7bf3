package v1

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// readUpload returns the bytes of the multipart "file" field, bounded by the
// handler's upload limit.
func (h *handlerImpl) readUpload(c *gin.Context) ([]byte, *apiError) {
	if h.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			apiErr := newAPIError(http.StatusRequestEntityTooLarge, errUploadTooLarge.Error())
			return nil, &apiErr
		}
		h.logger.Debug().Err(err).Msg("missing upload")
		apiErr := newBadRequestError(errMissingFile.Error())
		return nil, &apiErr
	}

	f, err := fh.Open()
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to open upload")
		apiErr := newStatusTextError(http.StatusInternalServerError)
		return nil, &apiErr
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to read upload")
		apiErr := newStatusTextError(http.StatusInternalServerError)
		return nil, &apiErr
	}
	return data, nil
}
