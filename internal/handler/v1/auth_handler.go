package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dentware/clinicdesk/internal/service"
)

type AuthHandler struct {
	authSvc *service.AuthService
}

func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	User   any `json:"user"`
	Tokens any `json:"tokens"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, tokens, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, loginResponse{User: user, Tokens: tokens})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	caller := callerFromClaims(c)
	h.authSvc.Logout(c.Request.Context(), caller.ID, caller.Role, c.ClientIP())
	respondOK(c, gin.H{"message": "logged out"})
}

// Me returns the persisted session identity, which survives restarts.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := h.authSvc.Session()
	if !ok {
		respondError(c, http.StatusUnauthorized, "no active session")
		return
	}
	respondOK(c, user)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if !bindJSON(c, &req) {
		return
	}

	tokens, err := h.authSvc.Refresh(req.RefreshToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, tokens)
}
