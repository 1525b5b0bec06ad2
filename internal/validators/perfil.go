package validators

import "strings"

type UpdatePerfilRequest struct {
	UserID    Optional[uint]   `json:"user_id"`
	Email     Optional[string] `json:"email"`
	Nome      Optional[string] `json:"nome"`
	Sobrenome Optional[string] `json:"sobrenome"`
	CPF       Optional[string] `json:"cpf"`
	Bio       Optional[string] `json:"bio"`
	Endereco  Optional[string] `json:"endereco"`
	Telefone  Optional[string] `json:"telefone"`
	Whatsapp  Optional[string] `json:"whatsapp"`
	Instagram Optional[string] `json:"instagram"`

	Especialidades Optional[[]uint] `json:"especialidades"`
}

// PerfilPatch maps column names to new values.
type PerfilPatch struct {
	Columns       map[string]any
	StyleIDs      []uint
	ReplaceStyles bool
}

func (p PerfilPatch) Empty() bool {
	return len(p.Columns) == 0 && !p.ReplaceStyles
}

func (r UpdatePerfilRequest) Validate() (PerfilPatch, error) {
	var errs Errors
	p := PerfilPatch{Columns: map[string]any{}}

	if r.Email.Set {
		errs.Add("email", "não pode ser alterado")
	}

	required := func(field string, o Optional[string], min, max int, normalize func(string) string) {
		if !o.Set {
			return
		}
		v := normalize(o.Value)
		if o.Null || v == "" {
			errs.Add(field, "não pode ser vazio")
			return
		}
		lengthBetween(&errs, field, v, min, max)
		p.Columns[field] = v
	}

	clearable := func(field string, o Optional[string], max int) {
		if !o.Set {
			return
		}
		v := strings.TrimSpace(o.Value)
		maxLength(&errs, field, v, max)
		p.Columns[field] = v
	}

	required("nome", r.Nome, 3, 30, strings.TrimSpace)
	required("sobrenome", r.Sobrenome, 3, 30, strings.TrimSpace)

	if r.CPF.Set {
		cpf := NormalizeCPF(r.CPF.Value)
		if r.CPF.Null {
			errs.Add("cpf", "não pode ser vazio")
		} else {
			validCPF(&errs, cpf)
			p.Columns["cpf"] = cpf
		}
	}

	clearable("bio", r.Bio, 500)
	clearable("endereco", r.Endereco, 255)
	clearable("instagram", r.Instagram, 100)

	if r.Telefone.Set {
		v := strings.TrimSpace(r.Telefone.Value)
		validPhone(&errs, "telefone", v)
		p.Columns["telefone"] = v
	}

	if r.Whatsapp.Set {
		v := strings.TrimSpace(r.Whatsapp.Value)
		if v != "" && !IsDigits(v) {
			errs.Add("whatsapp", "deve conter apenas números")
		}
		maxLength(&errs, "whatsapp", v, 20)
		p.Columns["whatsapp"] = v
	}

	if r.Especialidades.Set {
		p.ReplaceStyles = true
		seen := map[uint]bool{}
		for _, id := range r.Especialidades.Value {
			if id == 0 {
				errs.Add("especialidades", "contém um identificador inválido")
				break
			}
			if !seen[id] {
				seen[id] = true
				p.StyleIDs = append(p.StyleIDs, id)
			}
		}
	}

	return p, errs.Err()
}
