package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"sipkagroup/server/config"
)

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if cfg.AllowAllOrigins() {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.Server.CORSOrigins
	}
	return c
}

// NewRouter builds the engine with recovery, logging and metrics applied
func NewRouter(h *Handler) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(h.logger), h.metrics.Middleware())

	if err := SetupRoutes(router, h); err != nil {
		return nil, err
	}
	return router, nil
}

func SetupRoutes(router *gin.Engine, h *Handler) error {
	tmpl, err := loadTemplates()
	if err != nil {
		return err
	}
	router.SetHTMLTemplate(tmpl)

	router.GET("/", h.HomePage)
	router.GET("/about", h.AboutPage)
	router.GET("/contact", h.ContactPage)
	router.POST("/contact", h.SubmitContactPage)
	router.GET("/portfolio", h.PortfolioPage)
	router.GET("/portfolio/:slug", h.PropertyPage)
	router.NoRoute(h.NotFoundPage)

	router.GET("/healthz", h.Health)
	router.GET("/metrics", gin.WrapH(h.metrics.Handler()))

	api := router.Group("/api")
	api.Use(cors.New(corsConfig(h.cfg)))
	{
		api.GET("/properties", h.GetProperties)
		api.GET("/properties/:slug", h.GetProperty)
		api.GET("/categories", h.GetCategories)
		api.GET("/company", h.GetCompany)
		api.GET("/scene", h.GetScene)
		api.GET("/portfolio.geojson", h.GetPortfolioGeoJSON)
		api.POST("/contact", h.SubmitContact)
		api.GET("/contact/:id", h.GetContactSubmission)
		api.OPTIONS("/*path", func(c *gin.Context) {})
	}
	return nil
}
