package components

import (
	"island-eats/internal/handler"
	"island-eats/internal/handler/api"
	"island-eats/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewMenuHandler,
		api.NewCartHandler,
		api.NewOrderHandler,
		api.NewDropHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
