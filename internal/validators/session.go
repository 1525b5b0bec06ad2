package validators

import (
	"encoding/json"
	"time"

	"github.com/BruksfildServices01/ink-agenda/internal/timezone"
)

type CreateSessionRequest struct {
	ClienteID       uint        `json:"cliente_id" binding:"required"`
	DataAtendimento string      `json:"data_atendimento" binding:"required"`
	ValorSessao     json.Number `json:"valor_sessao" binding:"required"`
	NumeroSessao    json.Number `json:"numero_sessao" binding:"required"`
	Descricao       string      `json:"descricao" binding:"max=240"`
}

type SessionInput struct {
	ClienteID       uint
	DataAtendimento time.Time
	ValorSessao     float64
	NumeroSessao    int
	Descricao       string
}

// Validate checks the tags, then the date format and the numeric rules.
func (r CreateSessionRequest) Validate(loc *time.Location) (SessionInput, error) {
	errs := checkTags(r)
	in := SessionInput{ClienteID: r.ClienteID, Descricao: r.Descricao}

	if !errs.Has("data_atendimento") {
		if t, err := timezone.ParseDateTime(r.DataAtendimento, loc); err != nil {
			errs.Add("data_atendimento", MsgDateTimeFormat)
		} else {
			in.DataAtendimento = t
		}
	}
	if !errs.Has("valor_sessao") {
		in.ValorSessao = positiveMoney(&errs, "valor_sessao", r.ValorSessao)
	}
	if !errs.Has("numero_sessao") {
		in.NumeroSessao = positiveInt(&errs, "numero_sessao", r.NumeroSessao)
	}

	return in, errs.Err()
}

type UpdateSessionRequest struct {
	ClienteID       Optional[uint]        `json:"cliente_id"`
	DataAtendimento Optional[string]      `json:"data_atendimento"`
	ValorSessao     Optional[json.Number] `json:"valor_sessao"`
	NumeroSessao    Optional[json.Number] `json:"numero_sessao"`
	Descricao       Optional[string]      `json:"descricao"`
	Realizado       Optional[bool]        `json:"realizado"`
	Cancelado       Optional[bool]        `json:"cancelado"`
	Motivo          Optional[string]      `json:"motivo"`
}

// SessionPatch carries only the fields the caller sent. Descricao and Motivo
// may be cleared with null.
type SessionPatch struct {
	ClienteID       *uint
	DataAtendimento *time.Time
	ValorSessao     *float64
	NumeroSessao    *int
	Descricao       Optional[string]
	Realizado       *bool
	Cancelado       *bool
	Motivo          Optional[string]
}

func (r UpdateSessionRequest) Validate(loc *time.Location) (SessionPatch, error) {
	var errs Errors
	p := SessionPatch{
		Descricao: r.Descricao,
		Motivo:    r.Motivo,
	}

	notNull := func(field string, set, null bool) bool {
		if set && null {
			errs.Add(field, "não pode ser nulo")
			return false
		}
		return set
	}

	if notNull("cliente_id", r.ClienteID.Set, r.ClienteID.Null) {
		if r.ClienteID.Value == 0 {
			errs.Add("cliente_id", "deve ser um inteiro positivo")
		} else {
			p.ClienteID = r.ClienteID.Ptr()
		}
	}

	if notNull("data_atendimento", r.DataAtendimento.Set, r.DataAtendimento.Null) {
		if t, err := timezone.ParseDateTime(r.DataAtendimento.Value, loc); err != nil {
			errs.Add("data_atendimento", MsgDateTimeFormat)
		} else {
			p.DataAtendimento = &t
		}
	}

	if notNull("valor_sessao", r.ValorSessao.Set, r.ValorSessao.Null) {
		before := len(errs)
		v := positiveMoney(&errs, "valor_sessao", r.ValorSessao.Value)
		if len(errs) == before {
			p.ValorSessao = &v
		}
	}

	if notNull("numero_sessao", r.NumeroSessao.Set, r.NumeroSessao.Null) {
		before := len(errs)
		n := positiveInt(&errs, "numero_sessao", r.NumeroSessao.Value)
		if len(errs) == before {
			p.NumeroSessao = &n
		}
	}

	if r.Descricao.Present() {
		maxLength(&errs, "descricao", r.Descricao.Value, 240)
	}

	if notNull("realizado", r.Realizado.Set, r.Realizado.Null) {
		p.Realizado = r.Realizado.Ptr()
	}
	if notNull("cancelado", r.Cancelado.Set, r.Cancelado.Null) {
		p.Cancelado = r.Cancelado.Ptr()
	}

	if r.Motivo.Present() {
		maxLength(&errs, "motivo", r.Motivo.Value, 255)
	}

	return p, errs.Err()
}

type ChangeStatusRequest struct {
	Realizado *bool `json:"realizado" binding:"required"`
}

func (r ChangeStatusRequest) Validate() error {
	return checkTags(r).Err()
}
