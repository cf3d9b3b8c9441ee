package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"escalation-srv/internal/dispatch"
	"escalation-srv/internal/model"
	"escalation-srv/pkg/paginator"
	"escalation-srv/pkg/response"
)

func (h *handler) createConfig(c *gin.Context) {
	ctx := c.Request.Context()

	var req webhookConfigReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.dispatch.delivery.http.createConfig.ShouldBindJSON: %v", err)
		response.Error(c, errWrongBody)
		return
	}

	cfg, err := h.uc.CreateConfig(ctx, req.toInput())
	if err != nil {
		response.ErrorWithMap(c, err, errMap)
		return
	}

	response.OK(c, newWebhookConfigResp(cfg))
}

func (h *handler) updateConfig(c *gin.Context) {
	ctx := c.Request.Context()

	var req webhookConfigReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.dispatch.delivery.http.updateConfig.ShouldBindJSON: %v", err)
		response.Error(c, errWrongBody)
		return
	}

	cfg, err := h.uc.UpdateConfig(ctx, dispatch.UpdateConfigInput{
		ID:                c.Param("id"),
		CreateConfigInput: req.toInput(),
	})
	if err != nil {
		response.ErrorWithMap(c, err, errMap)
		return
	}

	response.OK(c, newWebhookConfigResp(cfg))
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
	response.OK(c, newWebhookConfigResp(cfg))
}

func (h *handler) listConfigs(c *gin.Context) {
	activeOnly, _ := strconv.ParseBool(c.Query("active"))
	cfgs, err := h.uc.ListConfigs(c.Request.Context(), dispatch.ListConfigsInput{
		ActiveOnly:  activeOnly,
		ChannelType: model.ChannelType(c.Query("channelType")),
	})
	if err != nil {
		response.ErrorWithMap(c, err, errMap)
		return
	}
	response.OK(c, newWebhookConfigListResp(cfgs))
}

func (h *handler) testChannel(c *gin.Context) {
	out, err := h.uc.TestChannel(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ErrorWithMap(c, err, errMap)
		return
	}

	response.OK(c, testChannelResp{
		Success:        out.Success,
		ResponseStatus: out.Log.ResponseStatus,
		ErrorMessage:   out.Log.ErrorMessage,
		DeliveryLogID:  out.Log.ID,
	})
}

func (h *handler) getLogs(c *gin.Context) {
	var pq paginator.PaginateQuery
	if err := c.ShouldBindQuery(&pq); err != nil {
		response.Error(c, errWrongQuery)
		return
	}

	ip := dispatch.GetLogsInput{
		WebhookConfigID: c.Query("webhookConfigId"),
		RunID:           c.Query("runId"),
		AlertID:         c.Query("alertId"),
		PaginateQuery:   pq,
	}
	if raw := c.Query("success"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			ip.SuccessOnly = &v
		}
	}

	logs, pag, err := h.uc.GetDeliveryLogs(c.Request.Context(), ip)
	if err != nil {
		response.ErrorWithMap(c, err, errMap)
		return
	}

	response.OK(c, newGetLogsResp(logs, pag))
}
