package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/ganttsheet/internal/app"
)

type exportRequest struct {
	Title   string    `json:"title"`
	Project string    `json:"project"`
	Company string    `json:"company"`
	Tasks   []taskDTO `json:"tasks"`
}

// HandleExport streams the workbook. Layout warnings are counted in the
// X-Layout-Warnings header.
func (h *handlerImpl) HandleExport(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug().Err(err).Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	tasks, err := toTasks(req.Tasks)
	if err != nil {
		abort(c, newBadRequestError(err.Error()))
		return
	}

	res, err := h.exports.Export(c.Request.Context(), app.ExportRequest{
		Tasks:   tasks,
		Title:   req.Title,
		Project: req.Project,
		Company: req.Company,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to export workbook")
		abort(c, classify(err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.FileName))
	c.Header("X-Layout-Warnings", strconv.Itoa(len(res.Warnings)))
	c.Data(http.StatusOK, res.MIMEType, res.Data)
}
