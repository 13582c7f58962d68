package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/promisor/internal/application"
	"github.com/oksasatya/promisor/internal/interface/middleware"
	"github.com/oksasatya/promisor/pkg/response"
	"github.com/oksasatya/promisor/pkg/validation"
)

type RelationHandler struct {
	Svc    *app.RelationService
	Logger *logrus.Logger
}

func NewRelationHandler(svc *app.RelationService, logger *logrus.Logger) *RelationHandler {
	return &RelationHandler{Svc: svc, Logger: logger}
}

type followRequest struct {
	ReceiverEmail string `json:"receiver_email" binding:"required"`
}

// Follow POST /api/members/follow
func (h *RelationHandler) Follow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	requester := c.GetString(middleware.CtxMemberEmail)
	if err := h.Svc.Follow(c.Request.Context(), requester, req.ReceiverEmail); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"following": req.ReceiverEmail}, "relation created", nil)
}

// Following GET /api/members/me/following
func (h *RelationHandler) Following(c *gin.Context) {
	members, err := h.Svc.Following(c.Request.Context(), c.GetString(middleware.CtxMemberEmail))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	out := make([]memberView, 0, len(members))
	for _, m := range members {
		out = append(out, toMemberView(m))
	}
	response.Success(c, http.StatusOK, out, "following", gin.H{"count": len(out)})
}
