package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"escalation-srv/internal/model"
	"escalation-srv/pkg/response"
)

func (h *handler) getPolicy(c *gin.Context) {
	policy, err := h.uc.GetPolicy(c.Request.Context())
	if err != nil {
		response.ErrorWithMap(c, err, errMap)
		return
	}
	response.OK(c, policy)
}

func (h *handler) updatePolicy(c *gin.Context) {
	ctx := c.Request.Context()

	var req model.EscalationPolicy
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.escalate.delivery.http.updatePolicy.ShouldBindJSON: %v", err)
		response.Error(c, errWrongBody)
		return
	}

	policy, err := h.uc.UpdatePolicy(ctx, req)
	if err != nil {
		response.ErrorWithMap(c, err, errMap)
		return
	}
	response.OK(c, policy)
}

func (h *handler) testLevel(c *gin.Context) {
	level, err := strconv.Atoi(c.Param("level"))
	if err != nil {
		response.Error(c, errWrongQuery)
		return
	}

	out, err := h.uc.TestLevel(c.Request.Context(), level)
	if err != nil {
		response.ErrorWithMap(c, err, errMap)
		return
	}

	response.OK(c, testLevelResp{
		EmailsSent: out.EmailsSent,
		SMSSent:    out.SMSSent,
		PushSent:   out.PushSent,
	})
}

type testLevelResp struct {
	EmailsSent int  `json:"emailsSent"`
	SMSSent    int  `json:"smsSent"`
	PushSent   bool `json:"pushSent"`
}
