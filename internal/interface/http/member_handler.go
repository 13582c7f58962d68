package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/promisor/internal/application"
	"github.com/oksasatya/promisor/internal/interface/middleware"
	"github.com/oksasatya/promisor/pkg/helpers"
	"github.com/oksasatya/promisor/pkg/response"
	"github.com/oksasatya/promisor/pkg/validation"
)

type MemberHandler struct {
	Svc           *app.MemberService
	Confirmations *app.ConfirmationService
	Logger        *logrus.Logger
	Cookies       *helpers.Manager
}

func NewMemberHandler(svc *app.MemberService, confirmations *app.ConfirmationService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *MemberHandler {
	return &MemberHandler{Svc: svc, Confirmations: confirmations, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required,pwd"`
	Telephone string `json:"telephone" binding:"omitempty,phone"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register POST /api/members
func (h *MemberHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	token, err := h.Svc.Register(c.Request.Context(), app.RegisterInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Telephone: req.Telephone,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"token": token}, "registered; check your email to confirm", nil)
}

// Confirm GET /api/members/confirm?token=
func (h *MemberHandler) Confirm(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"token": "is required"})
		return
	}
	t, err := h.Confirmations.Confirm(c.Request.Context(), token)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"member_id":    t.MemberID,
		"confirmed_at": t.ConfirmedAt,
	}, "email confirmed", nil)
}

// Login POST /api/login
func (h *MemberHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, res, "login successful", gin.H{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

// Refresh POST /api/refresh
func (h *MemberHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie(helpers.RefreshCookie)
	if err != nil || refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{"refreshed": true}, "token refreshed", gin.H{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

// Logout POST /api/logout
func (h *MemberHandler) Logout(c *gin.Context) {
	if err := h.Svc.Logout(c.Request.Context(), c.GetString(middleware.CtxMemberID)); err != nil && h.Logger != nil {
		h.Logger.WithError(err).Warn("drop session failed")
	}
	h.Cookies.Clear(c)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

// Me GET /api/members/me
func (h *MemberHandler) Me(c *gin.Context) {
	m, err := h.Svc.GetMemberByID(c.Request.Context(), c.GetString(middleware.CtxMemberID))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toMemberView(m), "member", nil)
}

// Search GET /api/members/search?q=&size=
func (h *MemberHandler) Search(c *gin.Context) {
	var req struct {
		Q    string `form:"q" binding:"required"`
		Size int    `form:"size" binding:"omitempty,min=1,max=50"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}
	docs, err := h.Svc.SearchMembers(c.Request.Context(), req.Q, req.Size)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("member search failed")
		}
		response.Error[any](c, http.StatusBadGateway, "search unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, docs, "members", gin.H{"count": len(docs)})
}
