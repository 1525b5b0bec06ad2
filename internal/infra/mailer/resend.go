package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	textTemplate "text/template"
	"time"

	"github.com/tidwall/gjson"

	"github.com/BruksfildServices01/ink-agenda/internal/domain/user"
)

const DefaultResendURL = "https://api.resend.com"

var ErrAPIKeyRequired = errors.New("mailer: resend api key is required")

type ResendConfig struct {
	APIKey string
	APIURL string
	From   string
}

type ResendMailer struct {
	apiKey string
	apiURL string
	from   string
	http   *http.Client
}

func NewResendMailer(cfg ResendConfig, httpClient *http.Client) *ResendMailer {
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = DefaultResendURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &ResendMailer{
		apiKey: cfg.APIKey,
		apiURL: strings.TrimRight(apiURL, "/"),
		from:   cfg.From,
		http:   httpClient,
	}
}

type Email struct {
	To      []string
	Subject string
	HTML    string
	Text    string
}

// Send posts one message and returns the provider message id.
func (m *ResendMailer) Send(ctx context.Context, e Email) (string, error) {
	if m.apiKey == "" {
		return "", ErrAPIKeyRequired
	}

	payload := map[string]any{
		"from":    m.from,
		"to":      e.To,
		"subject": e.Subject,
		"html":    e.HTML,
	}
	if e.Text != "" {
		payload["text"] = e.Text
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("mailer: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.apiURL+"/emails", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("mailer: new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("mailer: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("mailer: resend api error (status %d): %s", resp.StatusCode, string(body))
	}

	return gjson.GetBytes(body, "id").String(), nil
}

// ======================================================
// PASSWORD RESET
// ======================================================

type resetContext struct {
	Name     string
	ResetURL string
	Hours    int
}

var resetHTML = template.Must(template.New("reset_html").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Redefinição de senha</title></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #222;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h2>Ink Agenda</h2>
		<p>{{if .Name}}Olá, {{.Name}}!{{else}}Olá!{{end}}</p>
		<p>Recebemos um pedido para redefinir a sua senha. Clique no botão abaixo para criar uma nova:</p>
		<p style="text-align: center; margin: 30px 0;">
			<a href="{{.ResetURL}}" style="background-color: #111; color: #fff; padding: 12px 30px; text-decoration: none; border-radius: 5px;">Redefinir senha</a>
		</p>
		<p>Ou copie este link no navegador:</p>
		<p style="word-break: break-all;">{{.ResetURL}}</p>
		<p>O link expira em {{.Hours}} hora(s). Se você não fez este pedido, ignore este e-mail.</p>
	</div>
</body>
</html>`))

var resetText = textTemplate.Must(textTemplate.New("reset_text").Parse(`{{if .Name}}Olá, {{.Name}}!{{else}}Olá!{{end}}

Recebemos um pedido para redefinir a sua senha no Ink Agenda.
Acesse o link abaixo para criar uma nova:

{{.ResetURL}}

O link expira em {{.Hours}} hora(s). Se você não fez este pedido, ignore este e-mail.
`))

func (m *ResendMailer) SendPasswordReset(ctx context.Context, to, name, link string, ttl time.Duration) error {
	hours := int(ttl.Hours())
	if hours < 1 {
		hours = 1
	}
	data := resetContext{Name: name, ResetURL: link, Hours: hours}

	var html, text bytes.Buffer
	if err := resetHTML.Execute(&html, data); err != nil {
		return fmt.Errorf("mailer: render html: %w", err)
	}
	if err := resetText.Execute(&text, data); err != nil {
		return fmt.Errorf("mailer: render text: %w", err)
	}

	_, err := m.Send(ctx, Email{
		To:      []string{to},
		Subject: "Redefinição de senha",
		HTML:    html.String(),
		Text:    text.String(),
	})
	return err
}

var _ user.Mailer = (*ResendMailer)(nil)
