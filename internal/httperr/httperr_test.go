package httperr

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestWrite_EchoesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Set(RequestIDKey, "req-1")

	BadRequest(c, "validation_error", "Dados inválidos.")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, "validation_error", gjson.Get(body, "error_code").String())
	assert.Equal(t, "req-1", gjson.Get(body, "request_id").String())

	rec = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rec)
	Internal(c, "boom", "Erro interno.")
	assert.False(t, gjson.Get(rec.Body.String(), "request_id").Exists())
}
