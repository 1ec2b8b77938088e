package main

import (
	_ "github.com/jeamon/demo-adverts/docs"
	"github.com/julienschmidt/httprouter"
	httpswagger "github.com/swaggo/http-swagger/v2"
)

// MiddlewareMap contains middlwares chain to
// use for public-facing and ops requests.
type MiddlewareMap struct {
	public MiddlewareFunc
	ops    MiddlewareFunc
}

// SetupRoutes injects advert and ops related endpoints if required.
func (api *APIHandler) SetupRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.NotFound = api.NotFound()
	api.SetupAdvertRoutes(router, m)
	if api.config != nil && api.config.OpsEndpointsEnable {
		api.SetupOpsRoutes(router, m)
	}
	router.GET("/swagger/*any", m.public(api.OpsHandlerWrapper(httpswagger.WrapHandler)))
	return router
}

// SetupAdvertRoutes injects advert related api endpoints.
func (api *APIHandler) SetupAdvertRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.GET("/", m.public(api.Index))
	router.GET("/status", m.public(api.Status))
	router.POST("/v1/adverts", m.public(api.CreateAdvert))
	router.POST("/v1/adverts/batch", m.public(api.CreateAdverts))
	router.GET("/v1/adverts", m.public(api.GetAllAdverts))
	router.GET("/v1/adverts/category/:category", m.public(api.GetAdvertsByCategory))
	router.GET("/v1/adverts/price", m.public(api.GetAdvertsByMaxPrice))
	router.PUT("/v1/adverts/:id", m.public(api.UpdateAdvert))
	router.DELETE("/v1/adverts/:id", m.public(api.DeleteAdvert))
	return router
}
