package router

import (
	"fmt"
	"net/http"

	"github.com/RoyceAzure/lab/pos/internal/api"
	m "github.com/RoyceAzure/lab/pos/internal/api/middleware"
	"github.com/RoyceAzure/lab/pos/internal/token"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func SetupRouter(server *api.Server, tokenMaker token.Maker, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件

	r.Use(m.RequestIdMiddleware)
	r.Use(m.AuthPayloadMiddleware(tokenMaker))
	r.Use(middleware.RealIP)
	r.Use(m.RecoverMiddleware(logger))
	r.Use(m.LoggerMiddleware(logger))

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		//Auth相關路由
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", server.AuthHandler.Login)
			r.With(m.AuthMiddleware).Get("/me", server.AuthHandler.Me)
		})

		//商品目錄，收銀台需要快速查詢
		r.Group(func(r chi.Router) {
			r.Use(m.AuthMiddleware)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", server.ProductHandler.ListProducts)
				r.Get("/search", server.ProductHandler.SearchProducts)
				r.Get("/{id}", server.ProductHandler.GetProduct)
			})
			r.Get("/categories", server.ProductHandler.ListCategories)

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", server.OrderHandler.CreateOrder)
				r.Get("/", server.OrderHandler.ListOrders)
				r.Get("/{id}", server.OrderHandler.GetOrder)
				r.Post("/{id}/complete", server.OrderHandler.CompleteOrder)
				r.Post("/{id}/cancel", server.OrderHandler.CancelOrder)
			})

			r.Route("/inventory", func(r chi.Router) {
				r.Get("/low-stock", server.InventoryHandler.ListLowStock)
				r.Get("/{product_id}", server.InventoryHandler.GetInventory)
				//進貨限管理角色
				r.With(m.RequireRole("admin", "manager")).Post("/{product_id}/restock", server.InventoryHandler.Restock)
			})
		})
	})
	// 在設置完所有路由後打印路由樹
	fmt.Println(chi.Walk(r, func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		fmt.Printf("%s %s\n", method, route)
		return nil
	}))
	return r
}
