package validators

import "strings"

type CreateClientRequest struct {
	Nome      string `json:"nome" binding:"required,min=5,max=50"`
	Telefone  string `json:"telefone" binding:"omitempty,number,max=20"`
	Descricao string `json:"descricao" binding:"max=480"`
	Endereco  string `json:"endereco" binding:"max=255"`
}

func (r *CreateClientRequest) Validate() error {
	r.Nome = strings.TrimSpace(r.Nome)
	r.Telefone = strings.TrimSpace(r.Telefone)
	return checkTags(r).Err()
}

// UpdateClientRequest validates each present field on its own.
type UpdateClientRequest struct {
	Nome      Optional[string] `json:"nome"`
	Telefone  Optional[string] `json:"telefone"`
	Descricao Optional[string] `json:"descricao"`
	Endereco  Optional[string] `json:"endereco"`
}

func (r *UpdateClientRequest) Validate() error {
	var errs Errors

	if r.Nome.Set {
		r.Nome.Value = strings.TrimSpace(r.Nome.Value)
		if r.Nome.Null || r.Nome.Value == "" {
			errs.Add("nome", "não pode ser vazio")
		} else {
			lengthBetween(&errs, "nome", r.Nome.Value, 5, 50)
		}
	}

	if r.Telefone.Present() {
		r.Telefone.Value = strings.TrimSpace(r.Telefone.Value)
		if r.Telefone.Value != "" && !IsDigits(r.Telefone.Value) {
			errs.Add("telefone", "deve conter apenas números")
		}
		maxLength(&errs, "telefone", r.Telefone.Value, 20)
	}

	if r.Descricao.Present() {
		maxLength(&errs, "descricao", r.Descricao.Value, 480)
	}
	if r.Endereco.Present() {
		maxLength(&errs, "endereco", r.Endereco.Value, 255)
	}

	return errs.Err()
}

func (r UpdateClientRequest) Empty() bool {
	return !r.Nome.Set && !r.Telefone.Set && !r.Descricao.Set && !r.Endereco.Set
}
