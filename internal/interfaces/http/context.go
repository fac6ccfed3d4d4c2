package http

import "github.com/gofiber/fiber/v2"

// Cabeceras de identidad inyectadas por el gateway que autentica aguas arriba.
// La autenticación y el scoping por tenant ocurren fuera de este servicio;
// aquí solo se consumen los valores ya verificados.
const (
	HeaderOrganizationID = "X-Organization-ID"
	HeaderUserID         = "X-User-ID"
)

// GetOrganizationID devuelve el tenant de la petición.
func GetOrganizationID(c *fiber.Ctx) string {
	return c.Get(HeaderOrganizationID)
}

// GetUserID devuelve el actor de la petición.
func GetUserID(c *fiber.Ctx) string {
	return c.Get(HeaderUserID)
}
