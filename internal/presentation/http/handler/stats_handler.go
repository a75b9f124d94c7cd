package handler

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/till-api/internal/application/service"
	"github.com/sangkips/till-api/internal/presentation/http/dto/request"
	"github.com/sangkips/till-api/internal/presentation/http/dto/response"
	"github.com/sangkips/till-api/internal/reporting"
	"github.com/sangkips/till-api/pkg/apperror"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StatsHandler serves the sales statistics screen
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Get returns KPIs and ranked rollups for the requested period and view
func (h *StatsHandler) Get(c *gin.Context) {
	input, err := statsInput(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	rep, err := h.statsService.Build(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Statistics retrieved successfully", rep)
}

// Export returns the same report as an XLSX workbook
func (h *StatsHandler) Export(c *gin.Context) {
	input, err := statsInput(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.statsService.Export(c.Request.Context(), &buf, input); err != nil {
		response.Error(c, err)
		return
	}

	name := fmt.Sprintf("sales-stats-%s.xlsx", time.Now().Format("20060102-1504"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(200, xlsxContentType, buf.Bytes())
}

func statsInput(c *gin.Context) (*service.StatsInput, error) {
	var req request.StatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return nil, apperror.FromValidation(err)
	}
	return statsInputFrom(req.From, req.To, req.View, req.ItemRanking, req.TopN, req.TillNumber)
}

func statsInputFrom(fromRaw, toRaw, viewRaw, rankRaw string, topN int, till string) (*service.StatsInput, error) {
	from, err := parseTimeParam("from", fromRaw, false)
	if err != nil {
		return nil, err
	}
	to, err := parseTimeParam("to", toRaw, true)
	if err != nil {
		return nil, err
	}
	view, err := reporting.ParseView(viewRaw)
	if err != nil {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "view", Message: err.Error()}})
	}
	ranking, err := reporting.ParseItemRanking(rankRaw)
	if err != nil {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "rank_by", Message: err.Error()}})
	}
	return &service.StatsInput{
		From:        from,
		To:          to,
		View:        view,
		ItemRanking: ranking,
		TopN:        topN,
		TillNumber:  till,
	}, nil
}
