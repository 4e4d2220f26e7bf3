package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/ganttsheet/internal/domain"
)

const previewRows = 5

type inspectSheetResponse struct {
	Columns   []string            `json:"columns"`
	Suggested selectionDTO        `json:"suggested"`
	RowCount  int                 `json:"row_count"`
	Preview   []map[string]string `json:"preview"`
}

func newInspectSheetResponse(table *domain.Table, suggested domain.ColumnSelection) inspectSheetResponse {
	resp := inspectSheetResponse{
		Columns:   table.Columns,
		Suggested: newSelectionDTO(suggested),
		RowCount:  len(table.Rows),
		Preview:   make([]map[string]string, 0, previewRows),
	}
	for i, row := range table.Rows {
		if i == previewRows {
			break
		}
		out := make(map[string]string, len(row))
		for col, v := range row {
			out[col] = v.String()
		}
		resp.Preview = append(resp.Preview, out)
	}
	return resp
}

func (h *handlerImpl) HandleInspectSheet(c *gin.Context) {
	data, apiErr := h.readUpload(c)
	if apiErr != nil {
		abort(c, *apiErr)
		return
	}

	res, err := h.inspect.Inspect(c.Request.Context(), data)
	if err != nil {
		h.logger.Debug().Err(err).Msg("failed to inspect sheet")
		abort(c, classify(err))
		return
	}

	h.logger.Debug().
		Int("columns", len(res.Table.Columns)).
		Int("rows", len(res.Table.Rows)).
		Msg("inspected sheet")
	c.JSON(http.StatusOK, newInspectSheetResponse(res.Table, res.Suggested))
}
