package http

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/StockLedger-api/internal/domain"
)

// Caso 1: mapeo de errores de dominio a códigos HTTP.
func TestWriteError_Mapeo(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"sin variantes", domain.ErrNoVariants, http.StatusBadRequest},
		{"variante ambigua", domain.ErrAmbiguousVariant, http.StatusBadRequest},
		{"variante no encontrada", domain.ErrVariantNotFound, http.StatusBadRequest},
		{"entrada inválida", domain.ErrInvalidInput, http.StatusBadRequest},
		{"duplicado", domain.ErrDuplicate, http.StatusConflict},
		{"ya recibida", domain.ErrAlreadyReceived, http.StatusConflict},
		{"transición ilegal", domain.ErrConflict, http.StatusConflict},
		{"stock insuficiente", domain.ErrInsufficientStock, http.StatusConflict},
		{"prohibido", domain.ErrForbidden, http.StatusForbidden},
		{"desconocido", fmt.Errorf("se rompió algo"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/fail", func(c *fiber.Ctx) error {
				return writeError(c, tc.err)
			})
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
		})
	}
}

// Caso 2: InsufficientStockError viaja con el detalle (SKU y déficit).
func TestWriteError_StockInsuficienteConDetalle(t *testing.T) {
	app := fiber.New()
	app.Get("/fail", func(c *fiber.Ctx) error {
		return writeError(c, &domain.InsufficientStockError{SKU: "CAM-S", Requested: 5, Available: 3})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "INSUFFICIENT_STOCK")
	assert.Contains(t, string(body), "CAM-S")
}

// Caso 3: sin cabecera de organización la identidad no es válida.
func TestRequireIdentity(t *testing.T) {
	app := fiber.New()
	app.Get("/who", func(c *fiber.Ctx) error {
		org, user, ok := requireIdentity(c)
		return c.JSON(fiber.Map{"org": org, "user": user, "ok": ok})
	})

	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set(HeaderOrganizationID, "org-1")
	req.Header.Set(HeaderUserID, "user-1")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"ok":true`)

	// sin organización → no válida
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/who", nil), -1)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"ok":false`)
}
