package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tallerapp/workshop-api/internal/styles"
)

// StylesHandler serves the shell stylesheet. An external file at the
// configured path overrides the embedded default, same precedence the
// desktop build used.
type StylesHandler struct {
	Path string
}

func NewStylesHandler(path string) *StylesHandler { return &StylesHandler{Path: path} }

// Get handles GET /v1/styles.
func (h *StylesHandler) Get(c echo.Context) error {
	return c.Blob(http.StatusOK, "text/css; charset=utf-8", []byte(styles.Load(h.Path)))
}
