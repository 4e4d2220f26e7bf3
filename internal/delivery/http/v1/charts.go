package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/ganttsheet/internal/app"
	"github.com/alexanderramin/ganttsheet/internal/domain"
)

type chartRequest struct {
	Title string    `json:"title"`
	Width int       `json:"width"`
	Tasks []taskDTO `json:"tasks"`
}

func (h *handlerImpl) HandleChart(c *gin.Context) {
	var req chartRequest
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

	res, err := h.charts.Chart(c.Request.Context(), app.ChartRequest{
		Tasks: tasks,
		Style: domain.ChartStyle(c.Param("style")),
		Title: req.Title,
		Width: req.Width,
	})
	if err != nil {
		abort(c, classify(err))
		return
	}
	c.Data(http.StatusOK, res.ContentType, res.Body)
}
