package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"escalation-srv/internal/report"
	"escalation-srv/pkg/paginator"
	"escalation-srv/pkg/response"
)

func (h *handler) createConfig(c *gin.Context) {
	ctx := c.Request.Context()

	var req reportConfigReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.report.delivery.http.createConfig.ShouldBindJSON: %v", err)
		response.Error(c, errWrongBody)
		return
	}

	cfg, err := h.uc.CreateConfig(ctx, req.toInput())
	if err != nil {
		response.ErrorWithMap(c, err, errMap)
		return
	}

	response.OK(c, newReportConfigResp(cfg))
}

func (h *handler) updateConfig(c *gin.Context) {
	ctx := c.Request.Context()

	var req reportConfigReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.report.delivery.http.updateConfig.ShouldBindJSON: %v", err)
		response.Error(c, errWrongBody)
		return
	}

	cfg, err := h.uc.UpdateConfig(ctx, report.UpdateConfigInput{
		ID:                c.Param("id"),
		CreateConfigInput: req.toInput(),
	})
	if err != nil {
		response.ErrorWithMap(c, err, errMap)
		return
	}

	response.OK(c, newReportConfigResp(cfg))
}

func (h *handler) deleteConfig(c *gin.Context) {
	if err := h.uc.DeleteConfig(c.Request.Context(), c.Param("id")); err != nil {
		response.ErrorWithMap(c, err, errMap)
		return
	}
	response.OK(c, nil)
}

func (h *handler) detailConfig(c *gin.Context) {
	cfg, err := h.uc.DetailConfig(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ErrorWithMap(c, err, errMap)
		return
	}
	response.OK(c, newReportConfigResp(cfg))
}

func (h *handler) listConfigs(c *gin.Context) {
	activeOnly, _ := strconv.ParseBool(c.Query("active"))
	cfgs, err := h.uc.ListConfigs(c.Request.Context(), report.ListConfigsInput{ActiveOnly: activeOnly})
	if err != nil {
		response.ErrorWithMap(c, err, errMap)
		return
	}
	response.OK(c, newReportConfigListResp(cfgs))
}

func (h *handler) preview(c *gin.Context) {
	ip := report.PreviewInput{ConfigID: c.Param("id")}
	if from, ok := parseTimeQuery(c, "from"); ok {
		ip.PeriodStart = &from
	}
	if to, ok := parseTimeQuery(c, "to"); ok {
		ip.PeriodEnd = &to
	}

	data, err := h.uc.Preview(c.Request.Context(), ip)
	if err != nil {
		response.ErrorWithMap(c, err, errMap)
		return
	}
	response.OK(c, data)
}

func (h *handler) sendNow(c *gin.Context) {
	out, err := h.uc.SendNow(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ErrorWithMap(c, err, errMap)
		return
	}
	response.OK(c, newRunOutcomeResp(out))
}

func (h *handler) getHistory(c *gin.Context) {
	var pq paginator.PaginateQuery
	if err := c.ShouldBindQuery(&pq); err != nil {
		response.Error(c, errWrongQuery)
		return
	}

	runs, pag, err := h.uc.GetHistory(c.Request.Context(), report.GetHistoryInput{
		ConfigID:      c.Param("id"),
		PaginateQuery: pq,
	})
	if err != nil {
		response.ErrorWithMap(c, err, errMap)
		return
	}

	response.OK(c, newGetHistoryResp(runs, pag))
}

// export streams the artifact directly instead of the JSON envelope.
func (h *handler) export(c *gin.Context) {
	from, okFrom := parseTimeQuery(c, "from")
	to, okTo := parseTimeQuery(c, "to")
	if !okFrom || !okTo {
		response.Error(c, errWrongQuery)
		return
	}

	ip := report.ExportInput{
		Format:            report.ExportFormat(c.DefaultQuery("format", string(report.ExportFormatExcel))),
		PeriodStart:       from,
		PeriodEnd:         to,
		AlertTypes:        c.QueryArray("alertType"),
		ProductionLineIDs: c.QueryArray("productionLineId"),
	}

	out, err := h.uc.Export(c.Request.Context(), ip)
	if err != nil {
		response.ErrorWithMap(c, err, errMap)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	c.Data(http.StatusOK, out.ContentType, out.Data)
}

func parseTimeQuery(c *gin.Context, key string) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
