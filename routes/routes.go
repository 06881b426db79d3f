package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/tradedesk/controllers"
	"github.com/zsmartex/tradedesk/controllers/admin_controllers"
	"github.com/zsmartex/tradedesk/controllers/identity_controllers"
	"github.com/zsmartex/tradedesk/controllers/market_controllers"
	"github.com/zsmartex/tradedesk/controllers/token_sale_controllers"
	"github.com/zsmartex/tradedesk/routes/middlewares"
	"github.com/zsmartex/tradedesk/server"
)

func SetupRouter(app *server.App) *fiber.App {
	r := fiber.New(fiber.Config{
		AppName:               app.Config.App.Name,
		DisableStartupMessage: true,
	})
	r.Use(middlewares.Recover)

	public := &controllers.Handler{App: app}
	identity := &identity_controllers.Handler{App: app}
	market := &market_controllers.Handler{App: app}
	tokenSale := &token_sale_controllers.Handler{App: app}
	admin := &admin_controllers.Handler{App: app}

	authenticate := middlewares.Authenticate(app.Sessions)

	api := r.Group("/api/v2")

	api.Get("/public/timestamp", public.GetTimestamp)
	api.Get("/public/assets", public.GetAssets)
	api.Get("/public/assets/:symbol", public.GetAsset)
	api.Get("/public/token_sale", public.GetTokenSale)
	api.Get("/public/token_sale/tokenomics", public.GetTokenomics)

	api.Post("/identity/users", identity.SignUp)
	api.Post("/identity/sessions", identity.SignIn)
	api.Post("/identity/sessions/demo", identity.EnterDemo)
	api.Delete("/identity/sessions", authenticate, identity.SignOut)
	api.Get("/identity/users/me", authenticate, identity.GetMe)

	api.Post("/market/orders", authenticate, market.CreateOrder)
	api.Post("/market/orders/estimate", authenticate, market.EstimateOrder)
	api.Get("/market/orders", authenticate, market.GetOrders)
	api.Get("/market/orders/:id", authenticate, market.GetOrderByID)
	api.Post("/market/orders/:id/cancel", authenticate, market.CancelOrderByID)

	account := api.Group("/account", authenticate)
	account.Get("/portfolios", public.GetPortfolios)
	account.Get("/portfolios/:id/holdings", public.GetHoldings)
	account.Get("/transactions", public.GetTransactions)
	account.Get("/watchlists", public.GetWatchlists)
	account.Post("/watchlists", public.CreateWatchlist)
	account.Post("/watchlists/:id/assets/:asset_id", public.AddWatchlistAsset)
	account.Delete("/watchlists/:id/assets/:asset_id", public.RemoveWatchlistAsset)
	account.Get("/settings", public.GetSettings)
	account.Put("/settings", public.UpdateSettings)
	account.Get("/settings/export", public.ExportSettings)
	account.Post("/settings/import", public.ImportSettings)

	sale := api.Group("/token_sale", authenticate)
	sale.Get("/wallet", tokenSale.GetWallet)
	sale.Post("/wallet", tokenSale.ConnectWallet)
	sale.Delete("/wallet", tokenSale.DisconnectWallet)
	sale.Post("/purchases", tokenSale.CreatePurchase)
	sale.Get("/purchases", tokenSale.GetPurchases)

	adminGroup := api.Group("/admin", authenticate, middlewares.AdminVaildator)
	adminGroup.Get("/demo_mode", admin.GetDemoMode)
	adminGroup.Put("/demo_mode", admin.SetDemoMode)
	adminGroup.Post("/assets/refresh", admin.RefreshAssets)
	adminGroup.Post("/prices/tick", admin.TickPrices)

	return r
}
