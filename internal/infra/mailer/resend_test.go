package mailer

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestSendPasswordReset(t *testing.T) {
	var got []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		got, _ = io.ReadAll(r.Body)
		_, _ = io.WriteString(w, `{"id":"msg_1"}`)
	}))
	defer srv.Close()

	m := NewResendMailer(ResendConfig{APIKey: "re_test", APIURL: srv.URL, From: "Ink <no-reply@ink.test>"}, srv.Client())

	err := m.SendPasswordReset(context.Background(), "ana@studio.dev", "Ana", "https://app.test/reset?token=abc", 2*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, "ana@studio.dev", gjson.GetBytes(got, "to.0").String())
	assert.Equal(t, "Redefinição de senha", gjson.GetBytes(got, "subject").String())
	assert.Contains(t, gjson.GetBytes(got, "html").String(), "https://app.test/reset?token=abc")
	assert.Contains(t, gjson.GetBytes(got, "text").String(), "2 hora(s)")
}

func TestSend_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"message":"invalid from"}`)
	}))
	defer srv.Close()

	m := NewResendMailer(ResendConfig{APIKey: "re_test", APIURL: srv.URL}, srv.Client())
	_, err := m.Send(context.Background(), Email{To: []string{"a@b.com"}, Subject: "x", HTML: "y"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestSend_RequiresKey(t *testing.T) {
	m := NewResendMailer(ResendConfig{}, nil)
	_, err := m.Send(context.Background(), Email{})
	assert.ErrorIs(t, err, ErrAPIKeyRequired)
}
