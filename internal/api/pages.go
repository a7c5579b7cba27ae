package api

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"sipkagroup/server/config"
	"sipkagroup/server/internal/catalog"
	"sipkagroup/server/internal/contact"
	"sipkagroup/server/internal/models"
	"sipkagroup/server/internal/queue"
)

//go:embed templates/*.html
var templateFS embed.FS

func loadTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"markdown": renderMarkdown,
		"tel":      telURL,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// renderMarkdown converts catalog copy to HTML. Catalog text is trusted source
// data, so raw HTML inside it is passed through.
func renderMarkdown(src string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	return template.HTML(markdown.ToHTML([]byte(src), p, r))
}

// telURL marks a tel: link as safe for href attributes
func telURL(phone string) template.URL {
	return template.URL(config.TelHref(phone))
}

// showingLabel is the count line above the portfolio grid
func showingLabel(n int) string {
	if n == 1 {
		return "Showing 1 property"
	}
	return fmt.Sprintf("Showing %d properties", n)
}

// page returns the data every template expects, merged with extra
func (h *Handler) page(c *gin.Context, title string, extra gin.H) gin.H {
	data := gin.H{
		"Title":   title,
		"Company": config.Company,
		"Nav":     config.NavLinks,
		"Path":    c.Request.URL.Path,
		"Year":    time.Now().Year(),
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

func (h *Handler) HomePage(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", h.page(c, config.Company.Name, gin.H{
		"Featured":   h.catalog.Featured(),
		"Categories": models.Categories,
		"Stats":      config.Stats,
	}))
}

func (h *Handler) AboutPage(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", h.page(c, "About", nil))
}

func (h *Handler) PortfolioPage(c *gin.Context) {
	category, err := models.ParseCategory(c.Query("category"))
	if err != nil {
		h.logger.WithError(err).Debug("Unknown portfolio filter, showing all properties")
		category = models.CategoryAll
	}

	properties := h.catalog.Filter(category)
	c.HTML(http.StatusOK, "portfolio.html", h.page(c, "Portfolio", gin.H{
		"Tabs":       h.catalog.Categories(),
		"Active":     category,
		"Properties": properties,
		"Showing":    showingLabel(len(properties)),
	}))
}

func (h *Handler) PropertyPage(c *gin.Context) {
	p, err := h.catalog.Get(c.Param("slug"))
	if err != nil {
		if !errors.Is(err, catalog.ErrNotFound) {
			h.logger.WithError(err).Error("Failed to get property")
		}
		h.NotFoundPage(c)
		return
	}

	c.HTML(http.StatusOK, "property.html", h.page(c, p.Name, gin.H{
		"Property": p,
		"Related":  h.catalog.Related(p, catalog.DefaultRelatedLimit),
	}))
}

// submissionRefreshSeconds is how often a pending submission page reloads
const submissionRefreshSeconds = 1

// ContactPage renders the enquiry form, or the state of an earlier
// submission when ?submission=<id> is given.
func (h *Handler) ContactPage(c *gin.Context) {
	id := c.Query("submission")
	if id == "" {
		c.HTML(http.StatusOK, "contact.html", h.page(c, "Contact", gin.H{
			"Options": models.PropertyInterestOptions,
		}))
		return
	}

	sub, err := h.contact.Status(id)
	if err != nil {
		if !errors.Is(err, contact.ErrNotFound) {
			h.logger.WithError(err).Error("Failed to get contact submission")
		}
		c.HTML(http.StatusNotFound, "contact.html", h.page(c, "Contact", gin.H{
			"Options": models.PropertyInterestOptions,
			"Error":   "We could not find that message. Please send it again.",
		}))
		return
	}

	h.submissionPage(c, http.StatusOK, sub)
}

// submissionPage shows a submission's state. Pending submissions reload
// until the simulated send completes.
func (h *Handler) submissionPage(c *gin.Context, status int, sub models.Submission) {
	data := gin.H{"Submission": sub}
	if sub.State == models.SubmissionPending {
		data["Refresh"] = fmt.Sprintf("%d;url=%s", submissionRefreshSeconds, submissionPath(sub.ID))
	}
	c.HTML(status, "contact.html", h.page(c, "Contact", data))
}

func submissionPath(id string) string {
	return "/contact?" + url.Values{"submission": {id}}.Encode()
}

// SubmitContactPage handles the plain form post from the contact page
func (h *Handler) SubmitContactPage(c *gin.Context) {
	var form models.ContactForm
	if err := c.ShouldBind(&form); err != nil {
		h.metrics.ContactSubmissions.WithLabelValues("invalid").Inc()
		c.HTML(http.StatusBadRequest, "contact.html", h.page(c, "Contact", gin.H{
			"Options": models.PropertyInterestOptions,
			"Form":    form,
			"Error":   "Please fill in your name, a valid email, a subject and a message.",
		}))
		return
	}

	sub, err := h.contact.Submit(form)
	if err != nil {
		h.metrics.ContactSubmissions.WithLabelValues("rejected").Inc()
		status := http.StatusInternalServerError
		if errors.Is(err, queue.ErrQueueFull) || errors.Is(err, queue.ErrQueueClosed) {
			status = http.StatusServiceUnavailable
		} else {
			h.logger.WithError(err).Error("Failed to submit contact form")
		}
		c.HTML(status, "contact.html", h.page(c, "Contact", gin.H{
			"Options": models.PropertyInterestOptions,
			"Form":    form,
			"Error":   "Something went wrong. Please try again or email us directly.",
		}))
		return
	}

	h.metrics.ContactSubmissions.WithLabelValues("accepted").Inc()
	h.submissionPage(c, http.StatusAccepted, sub)
}

func (h *Handler) NotFoundPage(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.HTML(http.StatusNotFound, "not_found.html", h.page(c, "Not Found", nil))
}
