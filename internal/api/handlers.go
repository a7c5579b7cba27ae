package api

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"sipkagroup/server/config"
	"sipkagroup/server/internal/catalog"
	"sipkagroup/server/internal/contact"
	"sipkagroup/server/internal/geometry"
	"sipkagroup/server/internal/models"
	"sipkagroup/server/internal/queue"
	"sipkagroup/server/internal/scene"
)

type Handler struct {
	cfg     *config.Config
	logger  *logrus.Logger
	catalog *catalog.Catalog
	contact *contact.Service
	mapper  *geometry.PortfolioMapper
	metrics *Metrics
}

type SceneQuery struct {
	Width     *int   `form:"width" binding:"omitempty,min=1"`
	UserAgent string `form:"ua"`
}

type SceneResponse struct {
	Viewport int          `json:"viewport_width"`
	Mode     scene.Mode   `json:"mode"`
	Ambient  []string     `json:"ambient"`
	Scene    *scene.Scene `json:"scene"`
}

type PropertyResponse struct {
	Property models.Property   `json:"property"`
	Related  []models.Property `json:"related"`
}

func NewHandler(cfg *config.Config, cat *catalog.Catalog, contactService *contact.Service, metrics *Metrics, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	if metrics == nil {
		metrics = NewMetrics()
	}

	return &Handler{
		cfg:     cfg,
		logger:  logger,
		catalog: cat,
		contact: contactService,
		mapper:  geometry.NewPortfolioMapper(logger),
		metrics: metrics,
	}
}

func (h *Handler) GetProperties(c *gin.Context) {
	category, err := models.ParseCategory(c.Query("category"))
	if err != nil {
		h.logger.WithError(err).Debug("Rejected property filter")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
		return
	}

	c.JSON(http.StatusOK, h.catalog.Filter(category))
}

func (h *Handler) GetProperty(c *gin.Context) {
	p, err := h.catalog.Get(c.Param("slug"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to get property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get property"})
		return
	}

	c.JSON(http.StatusOK, PropertyResponse{
		Property: p,
		Related:  h.catalog.Related(p, catalog.DefaultRelatedLimit),
	})
}

func (h *Handler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Categories())
}

func (h *Handler) GetCompany(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"company":        config.Company,
		"nav_links":      config.NavLinks,
		"stats":          config.Stats,
		"outbound_links": config.OutboundLinks(),
	})
}

// GetScene builds the city scene for the caller's viewport. The width comes
// from the query (falling back to the configured default) and the user agent
// from the ua query or the request header.
func (h *Handler) GetScene(c *gin.Context) {
	var query SceneQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.logger.WithError(err).Debug("Failed to parse scene query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scene parameters"})
		return
	}

	width := h.cfg.Scene.DefaultWidth
	if query.Width != nil {
		width = *query.Width
	}
	userAgent := query.UserAgent
	if userAgent == "" {
		userAgent = c.GetHeader("User-Agent")
	}

	profile := scene.ResolveProfile(width, userAgent)
	s, err := scene.Build(h.catalog.All(), profile, scene.NewMemoryAllocator())
	if err != nil {
		h.logger.WithError(err).Warn("Failed to build city scene, serving placeholder")
		s = scene.Fallback()
		s.Profile = profile
	}
	defer s.Release()

	h.metrics.SceneBuilds.WithLabelValues(profile.Mode.String(), strconv.FormatBool(s.Fallback)).Inc()

	c.JSON(http.StatusOK, SceneResponse{
		Viewport: width,
		Mode:     profile.Mode,
		Ambient:  s.Ambient(),
		Scene:    s,
	})
}

func (h *Handler) GetPortfolioGeoJSON(c *gin.Context) {
	data, err := h.mapper.MarshalFeatureCollection(h.catalog.All())
	if err != nil {
		h.logger.WithError(err).Error("Failed to build portfolio map feed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build portfolio map"})
		return
	}

	c.Data(http.StatusOK, "application/geo+json", data)
}

func (h *Handler) SubmitContact(c *gin.Context) {
	var form models.ContactForm
	if err := c.ShouldBindJSON(&form); err != nil {
		h.metrics.ContactSubmissions.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid contact form",
			"details": err.Error(),
		})
		return
	}

	sub, err := h.contact.Submit(form)
	if err != nil {
		h.metrics.ContactSubmissions.WithLabelValues("rejected").Inc()
		if errors.Is(err, queue.ErrQueueFull) || errors.Is(err, queue.ErrQueueClosed) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":      "Contact form is busy, please try again shortly",
				"submission": sub,
			})
			return
		}
		h.logger.WithError(err).Error("Failed to submit contact form")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit contact form"})
		return
	}

	h.metrics.ContactSubmissions.WithLabelValues("accepted").Inc()
	c.JSON(http.StatusAccepted, sub)
}

func (h *Handler) GetContactSubmission(c *gin.Context) {
	sub, err := h.contact.Status(c.Param("id"))
	if err != nil {
		if errors.Is(err, contact.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to get contact submission")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get contact submission"})
		return
	}

	c.JSON(http.StatusOK, sub)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"properties": h.catalog.Len(),
	})
}
