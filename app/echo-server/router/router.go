package router

import (
	"net/http"

	"localGuide/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupBusinessRoutes(api *echo.Group, handler *rest.BusinessHandler, optionalAuth echo.MiddlewareFunc) {
	businesses := api.Group("/businesses")

	businesses.GET("", handler.ListBusinesses, optionalAuth)
	businesses.GET("/:id", handler.GetBusiness)
}

func SetupFeedRoutes(api *echo.Group, handler *rest.BusinessHandler, authRequired echo.MiddlewareFunc) {
	feed := api.Group("/feed", authRequired)

	feed.GET("/for-you", handler.ForYou)
}

func SetupInterestRoutes(api *echo.Group, handler *rest.InterestHandler) {
	interests := api.Group("/interests")

	interests.GET("", handler.GetAllInterests)
}

func SetupOpsRoutes(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}
