package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ink-agenda/internal/httpresp"
	"github.com/BruksfildServices01/ink-agenda/internal/usecase/account"
	"github.com/BruksfildServices01/ink-agenda/internal/validators"
)

const recoverMessage = "Se este e-mail estiver cadastrado, você receberá um link de recuperação."

type AuthHandler struct {
	register *account.Register
	login    *account.Login
	recover  *account.RecoverPassword
	change   *account.ChangePassword
}

func NewAuthHandler(
	register *account.Register,
	login *account.Login,
	recover *account.RecoverPassword,
	change *account.ChangePassword,
) *AuthHandler {
	return &AuthHandler{
		register: register,
		login:    login,
		recover:  recover,
		change:   change,
	}
}

// ======================================================
// REGISTER
// ======================================================

func (h *AuthHandler) Register(c *gin.Context) {
	var req validators.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		invalid(c, err)
		return
	}

	u, err := h.register.Execute(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "failed_to_register", "Erro ao criar conta.")
		return
	}

	httpresp.Created(c, u)
}

// ======================================================
// LOGIN
// ======================================================

func (h *AuthHandler) Login(c *gin.Context) {
	var req validators.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		invalid(c, err)
		return
	}

	res, err := h.login.Execute(c.Request.Context(), req.Email, req.Senha)
	if err != nil {
		respondError(c, err, "failed_to_login", "Erro ao autenticar.")
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// PASSWORD
// ======================================================

func (h *AuthHandler) RecoverPassword(c *gin.Context) {
	var req validators.RecoverPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		invalid(c, err)
		return
	}

	h.recover.Execute(c.Request.Context(), req.Email, req.RedirectTo)
	httpresp.Message(c, recoverMessage)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req validators.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		invalid(c, err)
		return
	}

	if err := h.change.Execute(c.Request.Context(), req.Token, req.NovaSenha); err != nil {
		respondError(c, err, "failed_to_change_password", "Erro ao alterar senha.")
		return
	}

	httpresp.Message(c, "Senha alterada com sucesso.")
}
