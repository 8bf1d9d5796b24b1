package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ledgerbank/ledgerbank/internal/transfer"
)

// RegisterTransferRoutes wires transfer and journal endpoints.
func RegisterTransferRoutes(r fiber.Router, h *transfer.Handler) {
	r.Post("/transfers", h.Create)
	r.Get("/transactions", h.History)
}
