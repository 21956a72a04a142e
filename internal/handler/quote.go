// internal/handler/quote.go
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"hw-quote/internal/catalog"
	"hw-quote/internal/domain"
	"hw-quote/internal/pricing"
	val "hw-quote/internal/validator"

	"github.com/gin-gonic/gin"
)

const maxFormMemory = 8 << 20

// Assistant matches free text to the catalog and drafts quotations.
type Assistant interface {
	MatchConfig(ctx context.Context, components map[string][]domain.Component, configText string) (map[string]string, error)
	DraftQuote(ctx context.Context, configText string, total float64) (string, error)
}

type QuoteHandler struct {
	catalog   *catalog.Service
	pricing   *pricing.Service
	assistant Assistant
}

func NewQuoteHandler(cat *catalog.Service, pr *pricing.Service, assistant Assistant) *QuoteHandler {
	return &QuoteHandler{catalog: cat, pricing: pr, assistant: assistant}
}

// Register mounts the API routes on rg.
func (h *QuoteHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/catalog", h.GetCatalog)
	rg.POST("/catalog", h.UpdateCatalog)
	rg.POST("/calculate", h.Calculate)
	rg.POST("/match-config", h.MatchConfig)
	rg.POST("/generate-quote", h.GenerateQuote)
}

// GetCatalog godoc
// @Summary Current catalog (categories, components, discounts)
// @Success 200 {object} domain.Catalog
// @Failure 500 {object} map[string]string
// @Router /api/v1/catalog [get]
func (h *QuoteHandler) GetCatalog(c *gin.Context) {
	cat, err := h.catalog.Get(c.Request.Context())
	if err != nil {
		slog.Error("GetCatalog failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load catalog"})
		return
	}
	c.JSON(http.StatusOK, cat)
}

// UpdateCatalog godoc
// @Summary Rebuild components and discounts from the admin form
// @Accept x-www-form-urlencoded
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/catalog [post]
func (h *QuoteHandler) UpdateCatalog(c *gin.Context) {
	// urlencoded и multipart (FormData из fetch) оба попадают в PostForm
	if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form"})
		return
	}

	// как request.form.to_dict(): берём первое значение каждого ключа
	submission := make(map[string]string, len(c.Request.PostForm))
	for key, values := range c.Request.PostForm {
		if len(values) > 0 {
			submission[key] = values[0]
		}
	}

	updated, err := h.catalog.Update(c.Request.Context(), submission)
	if err != nil {
		slog.Error("UpdateCatalog failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save catalog"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "prices updated",
		"catalog": updated,
	})
}

// Calculate godoc
// @Summary Price a set of selections
// @Accept json
// @Produce json
// @Param request body pricing.Request true "Selections, discount and special reduction"
// @Success 200 {object} pricing.Result
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/calculate [post]
func (h *QuoteHandler) Calculate(c *gin.Context) {
	req, ok := decodePricingRequest(c)
	if !ok {
		return
	}

	res, err := h.pricing.Quote(c.Request.Context(), req)
	if err != nil {
		writePricingError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// MatchConfig godoc
// @Summary Match a free-text configuration against the catalog
// @Accept json
// @Produce json
// @Param request body MatchConfigRequest true "Configuration text"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/match-config [post]
func (h *QuoteHandler) MatchConfig(c *gin.Context) {
	var req MatchConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := val.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	cat, err := h.catalog.Get(ctx)
	if err != nil {
		slog.Error("MatchConfig: catalog load failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not parse configuration"})
		return
	}

	matched, err := h.assistant.MatchConfig(ctx, cat.Components, req.ConfigString)
	if err != nil {
		slog.Error("MatchConfig failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not parse configuration"})
		return
	}
	c.JSON(http.StatusOK, matched)
}

// GenerateQuote godoc
// @Summary Draft quotation prose for a finished configuration
// @Accept json
// @Produce json
// @Param request body GenerateQuoteRequest true "Configuration text and total"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/generate-quote [post]
func (h *QuoteHandler) GenerateQuote(c *gin.Context) {
	var req GenerateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	ctx := c.Request.Context()
	configText := req.FinalConfigText
	total := req.TotalPrice

	// без готового текста собираем его сами из выбранных позиций
	if isBlank(configText) && len(req.Selections) > 0 {
		pr := pricing.Request{
			Selections:       req.Selections,
			DiscountID:       req.DiscountID,
			SpecialReduction: req.SpecialReduction,
		}
		text, err := h.pricing.Describe(ctx, pr)
		if err != nil {
			writePricingError(c, err)
			return
		}
		configText = text
		if total == nil {
			res, err := h.pricing.Quote(ctx, pr)
			if err != nil {
				writePricingError(c, err)
				return
			}
			total = &res.Total
		}
	}

	if isBlank(configText) || total == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "finalConfigText and totalPrice are required"})
		return
	}

	quote, err := h.assistant.DraftQuote(ctx, configText, *total)
	if err != nil {
		slog.Error("GenerateQuote failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate quote"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": quote})
}

// === DTO ===

type MatchConfigRequest struct {
	ConfigString string `json:"configString" validate:"required,notblank"`
}

type GenerateQuoteRequest struct {
	FinalConfigText  string                   `json:"finalConfigText"`
	TotalPrice       *float64                 `json:"totalPrice"`
	Selections       []pricing.SelectionInput `json:"selections"`
	DiscountID       *string                  `json:"discountId"`
	SpecialReduction pricing.Amount           `json:"specialReduction"`
}

func decodePricingRequest(c *gin.Context) (pricing.Request, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not compute price"})
		return pricing.Request{}, false
	}
	req, err := pricing.DecodeRequest(body)
	if err != nil {
		writePricingError(c, err)
		return pricing.Request{}, false
	}
	return req, true
}

func writePricingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pricing.ErrInvalidRequest):
		slog.Warn("Invalid calculation request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not compute price", "details": err.Error()})
	default:
		slog.Error("Calculation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute price"})
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
