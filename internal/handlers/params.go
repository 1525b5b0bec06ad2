package handlers

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ink-agenda/internal/httperr"
	"github.com/BruksfildServices01/ink-agenda/internal/imaging"
	mediauc "github.com/BruksfildServices01/ink-agenda/internal/usecase/media"
)

func parseID(c *gin.Context, raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

// idParam parses a positive integer path parameter.
func idParam(c *gin.Context, name string) (uint, bool) {
	return parseID(c, c.Param(name))
}

// imageFile reads the multipart "image" field, bounded one byte past the
// upload limit so oversize files are detected.
func imageFile(c *gin.Context) (string, []byte, bool) {
	fh, err := c.FormFile("image")
	if err != nil {
		respondError(c, mediauc.ErrImageRequired, "", "")
		return "", nil, false
	}

	if fh.Size > imaging.MaxUploadBytes {
		respondError(c, mediauc.ErrImageTooLarge, "", "")
		return "", nil, false
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_upload", "Não foi possível ler o arquivo enviado.")
		return "", nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, imaging.MaxUploadBytes+1))
	if err != nil {
		httperr.BadRequest(c, "invalid_upload", "Não foi possível ler o arquivo enviado.")
		return "", nil, false
	}

	return fh.Filename, data, true
}
