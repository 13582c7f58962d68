package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/promisor/internal/application"
	"github.com/oksasatya/promisor/internal/domain/entity"
	"github.com/oksasatya/promisor/internal/interface/middleware"
	"github.com/oksasatya/promisor/pkg/helpers"
	"github.com/oksasatya/promisor/pkg/response"
	"github.com/oksasatya/promisor/pkg/validation"
)

type BanDateHandler struct {
	Svc    *app.BanDateService
	Logger *logrus.Logger
}

func NewBanDateHandler(svc *app.BanDateService, logger *logrus.Logger) *BanDateHandler {
	return &BanDateHandler{Svc: svc, Logger: logger}
}

type createBanDateRequest struct {
	Date string `json:"date" binding:"required,datetime=2006-01-02"`
}

type editBanDateRequest struct {
	Status string `json:"status" binding:"required,datestatus"`
}

type listBanDatesQuery struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// Create POST /api/ban-dates
func (h *BanDateHandler) Create(c *gin.Context) {
	var req createBanDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	date, _ := helpers.ParseDate(req.Date)
	p, err := h.Svc.Create(c.Request.Context(), c.GetString(middleware.CtxMemberEmail), date)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toBanDateView(p), "ban date created", nil)
}

// List GET /api/ban-dates?from=&to=
func (h *BanDateHandler) List(c *gin.Context) {
	var q listBanDatesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}
	var from, to time.Time
	if q.From != "" {
		from, _ = helpers.ParseDate(q.From)
	}
	if q.To != "" {
		to, _ = helpers.ParseDate(q.To)
	}
	items, err := h.Svc.List(c.Request.Context(), c.GetString(middleware.CtxMemberEmail), from, to)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	out := make([]banDateView, 0, len(items))
	for _, p := range items {
		out = append(out, toBanDateView(p))
	}
	response.Success(c, http.StatusOK, out, "ban dates", gin.H{"count": len(out)})
}

// EditStatus PATCH /api/ban-dates/:id
func (h *BanDateHandler) EditStatus(c *gin.Context) {
	var req editBanDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.EditStatus(c.Request.Context(), c.GetString(middleware.CtxMemberEmail), c.Param("id"), entity.DateStatus(req.Status))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toBanDateView(p), "ban date updated", nil)
}
