package validators

import "strings"

type GenerateImageRequest struct {
	Prompt string `json:"prompt" binding:"required,min=3,max=1000"`
}

func (r *GenerateImageRequest) Validate() error {
	r.Prompt = strings.TrimSpace(r.Prompt)
	return checkTags(r).Err()
}

// PhotoMeta comes from the multipart form fields of a gallery upload.
type PhotoMeta struct {
	Titulo    string `json:"titulo" binding:"max=100"`
	Descricao string `json:"descricao" binding:"max=255"`
}

func (m *PhotoMeta) Validate() error {
	m.Titulo = strings.TrimSpace(m.Titulo)
	m.Descricao = strings.TrimSpace(m.Descricao)
	return checkTags(m).Err()
}
