package validators

import (
	"strings"
)

// NormalizeCPF drops the usual punctuation of CPF/CNPJ documents.
func NormalizeCPF(s string) string {
	return strings.NewReplacer(".", "", "-", "", "/", "", " ", "").Replace(strings.TrimSpace(s))
}

func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validCPF(errs *Errors, cpf string) {
	if !IsDigits(cpf) || (len(cpf) != 11 && len(cpf) != 14) {
		errs.Add("cpf", "deve conter 11 ou 14 dígitos")
	}
}

func validPhone(errs *Errors, field, phone string) {
	if phone == "" {
		return
	}
	if !IsDigits(phone) || len(phone) < 9 || len(phone) > 11 {
		errs.Add(field, "deve conter entre 9 e 11 dígitos")
	}
}

type RegisterRequest struct {
	Nome      string `json:"nome" binding:"required,min=3,max=30"`
	Sobrenome string `json:"sobrenome" binding:"required,min=3,max=30"`
	CPF       string `json:"cpf" binding:"required,max=20"`
	Email     string `json:"email" binding:"required,email,max=100"`
	Senha     string `json:"senha" binding:"required,min=8,max=100"`
	Telefone  string `json:"telefone" binding:"omitempty,number,min=9,max=11"`
}

// Validate normalizes the payload, re-checks the tags and applies the CPF rule.
func (r *RegisterRequest) Validate() error {
	r.Nome = strings.TrimSpace(r.Nome)
	r.Sobrenome = strings.TrimSpace(r.Sobrenome)
	r.CPF = NormalizeCPF(r.CPF)
	r.Email = NormalizeEmail(r.Email)
	r.Telefone = strings.TrimSpace(r.Telefone)

	errs := checkTags(r)
	if !errs.Has("cpf") {
		validCPF(&errs, r.CPF)
	}
	return errs.Err()
}

type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	return checkTags(r).Err()
}

type RecoverPasswordRequest struct {
	Email      string `json:"email" binding:"required,email"`
	RedirectTo string `json:"redirect_to" binding:"omitempty,max=500"`
}

func (r *RecoverPasswordRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	return checkTags(r).Err()
}

type ChangePasswordRequest struct {
	Token     string `json:"token" binding:"required"`
	NovaSenha string `json:"nova_senha" binding:"required,min=8,max=100"`
}

func (r *ChangePasswordRequest) Validate() error {
	r.Token = strings.TrimSpace(r.Token)
	return checkTags(r).Err()
}
