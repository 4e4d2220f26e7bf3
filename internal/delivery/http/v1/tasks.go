package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/ganttsheet/internal/app"
	"github.com/alexanderramin/ganttsheet/internal/domain"
)

type buildTasksResponse struct {
	Tasks     []taskDTO    `json:"tasks"`
	Anomalies []anomalyDTO `json:"anomalies"`
	Degraded  bool         `json:"degraded"`
	Selection selectionDTO `json:"selection"`
	Columns   []string     `json:"columns"`
}

// HandleBuildTasks takes a multipart upload. Optional form fields
// description, start and end override the detected columns.
func (h *handlerImpl) HandleBuildTasks(c *gin.Context) {
	data, apiErr := h.readUpload(c)
	if apiErr != nil {
		abort(c, *apiErr)
		return
	}

	req := app.BuildRequest{
		Data: data,
		Selection: domain.ColumnSelection{
			Description: c.PostForm("description"),
			StartDate:   c.PostForm("start"),
			EndDate:     c.PostForm("end"),
		},
	}
	res, err := h.build.BuildTasks(c.Request.Context(), req)
	if err != nil {
		h.logger.Debug().Err(err).Msg("failed to build tasks")
		abort(c, classify(err))
		return
	}

	h.logger.Info().
		Int("tasks", len(res.Tasks)).
		Int("anomalies", len(res.Anomalies)).
		Bool("degraded", res.Degraded).
		Msg("built tasks")
	c.JSON(http.StatusOK, buildTasksResponse{
		Tasks:     newTaskDTOs(res.Tasks, h.today()),
		Anomalies: newAnomalyDTOs(res.Anomalies),
		Degraded:  res.Degraded,
		Selection: newSelectionDTO(res.Selection),
		Columns:   res.Columns,
	})
}
