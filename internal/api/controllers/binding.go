package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"serenestays/internal/models/db_models"
	"serenestays/pkg/utils"
)

const maxBodyBytes = 1 << 20

// bindValue decodes the request body as any single JSON value. Numbers are
// kept as json.Number so integers survive the trip to storage.
func bindValue(c *gin.Context) (interface{}, error) {
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, utils.ErrPayloadTooLarge
		}
		return nil, utils.ErrInvalidPayload
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, utils.ErrInvalidPayload
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, utils.ErrInvalidPayload
	}
	return v, nil
}

// bindDocument decodes the request body as a JSON object.
func bindDocument(c *gin.Context) (db_models.Document, error) {
	v, err := bindValue(c)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, utils.ErrInvalidPayload
	}
	return db_models.Document(m), nil
}
