package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ledgerbank/ledgerbank/internal/account"
)

// RegisterAccountRoutes wires account endpoints.
func RegisterAccountRoutes(r fiber.Router, h *account.Handler) {
	r.Post("/accounts", h.Open)
	r.Get("/accounts", h.List)
	r.Get("/accounts/:number", h.Get)
	r.Post("/accounts/:number/deposits", h.Deposit)
	r.Post("/accounts/:number/withdrawals", h.Withdraw)
}
