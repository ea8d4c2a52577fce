package api

import (
	"strings"
	"time"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/service/ratelimit"
	"MarketPulse/internal/usecase"
	xhttp "MarketPulse/pkg/http"
	xlogger "MarketPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// aiHighlights is the fixed highlight set attached to every news item.
var aiHighlights = []string{
	"Impact on market sentiment",
	"Key financial metrics mentioned",
	"Potential market implications",
	"Related industry trends",
}

// MarketEchoHandler exposes the market data API over Echo.
type MarketEchoHandler struct {
	logger  *xlogger.Logger
	agg     *usecase.MarketAggregator
	limiter *ratelimit.Limiter
	started time.Time
}

func NewMarketEchoHandler(logger *xlogger.Logger, agg *usecase.MarketAggregator, limiter *ratelimit.Limiter) *MarketEchoHandler {
	return &MarketEchoHandler{
		logger:  logger,
		agg:     agg,
		limiter: limiter,
		started: time.Now(),
	}
}

func (h *MarketEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/market/:type/:symbol", h.MarketData)
	g.GET("/analysis/:type/:symbol", h.Analysis)
	g.GET("/news/:symbol", h.News)
	e.GET("/healthz", h.Health)
}

func (h *MarketEchoHandler) MarketData(c echo.Context) error {
	if err := h.throttle(c); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}

	req := &models.MarketDataRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	data := h.agg.GetMarketData(c.Request().Context(), models.AssetType(req.Type), req.Symbol, req.Days)
	return xhttp.SuccessResponse(c, data)
}

func (h *MarketEchoHandler) Analysis(c echo.Context) error {
	if err := h.throttle(c); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}

	req := &models.AnalysisRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	analysis := h.agg.GetAnalysis(c.Request().Context(), models.AssetType(req.Type), req.Symbol)
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=15")
	return xhttp.SuccessResponse(c, analysis)
}

func (h *MarketEchoHandler) News(c echo.Context) error {
	if err := h.throttle(c); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}

	req := &models.NewsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	symbols := strings.Split(strings.ToUpper(req.Symbol), ",")
	items := h.agg.GetNews(c.Request().Context(), symbols)
	for i := range items {
		items[i].AIHighlights = aiHighlights
	}
	return xhttp.SuccessResponse(c, items)
}

func (h *MarketEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(h.started).String(),
	})
}

func (h *MarketEchoHandler) throttle(c echo.Context) error {
	if h.limiter == nil {
		return nil
	}
	if !h.limiter.Allow(c.RealIP()) {
		h.logger.Warn("rate limit exceeded", xlogger.String("ip", c.RealIP()))
		return xhttp.TooManyRequestsError("Too many requests, slow down")
	}
	return nil
}
