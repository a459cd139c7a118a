package api

import "github.com/RoyceAzure/lab/pos/internal/api/handler"

type Server struct {
	AuthHandler      *handler.AuthHandler
	ProductHandler   *handler.ProductHandler
	OrderHandler     *handler.OrderHandler
	InventoryHandler *handler.InventoryHandler
}

func NewServer(
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
	inventoryHandler *handler.InventoryHandler,
) *Server {
	return &Server{
		AuthHandler:      authHandler,
		ProductHandler:   productHandler,
		OrderHandler:     orderHandler,
		InventoryHandler: inventoryHandler,
	}
}
