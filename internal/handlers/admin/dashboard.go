package admin

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/northwind-labs/sitecms/internal/chart"
	"github.com/northwind-labs/sitecms/pkg/debug"
	"github.com/northwind-labs/sitecms/pkg/httputil"
)

// Chart image bounds
const (
	defaultChartWidth = 600
	minChartWidth     = 200
	maxChartWidth     = 2000
)

// GetDashboard godoc
// @Summary Dashboard statistics for the last 30 days
// @Tags Admin Dashboard
// @Produce json
// @Success 200 {object} models.DashboardStats
// @Failure 500 {object} httputil.ErrorResponse
// @Router /admin/dashboard [get]
// @Security ApiKeyAuth
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Stats(r.Context())
	if err != nil {
		debug.Error("Failed to build dashboard stats: %v", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch dashboard stats")
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, stats)
}

// GetChart renders the visitors line chart or the enquiries pie chart as PNG.
// ?width= selects the image width; the height is fixed. When there is nothing to
// draw the placeholder text is returned as a 404 error body.
func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	width := defaultChartWidth
	if raw := httputil.GetQueryParam(r, "width"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < minChartWidth || n > maxChartWidth {
			httputil.RespondWithError(w, http.StatusBadRequest, "Width must be between 200 and 2000")
			return
		}
		width = n
	}

	stats, err := h.stats.Stats(r.Context())
	if err != nil {
		debug.Error("Failed to build dashboard stats for chart: %v", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch dashboard stats")
		return
	}

	var draw func(chart.Canvas) chart.Result
	switch mux.Vars(r)["name"] {
	case "visitors":
		points := chart.VisitorSeries(stats.VisitorData)
		draw = func(c chart.Canvas) chart.Result { return chart.DrawLine(c, points) }
	case "enquiries":
		slices := chart.EnquirySlices(stats.EnquiryTypes)
		draw = func(c chart.Canvas) chart.Result { return chart.DrawPie(c, slices) }
	default:
		httputil.RespondWithError(w, http.StatusNotFound, "Chart not found")
		return
	}

	var buf bytes.Buffer
	res, err := chart.RenderPNG(&buf, width, chart.DefaultHeight, draw)
	if err != nil {
		debug.Error("Failed to render chart: %v", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "Failed to render chart")
		return
	}
	if !res.Drawn() {
		httputil.RespondWithError(w, http.StatusNotFound, res.Placeholder)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// Live upgrades the request to the websocket change feed.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	if h.live == nil {
		httputil.RespondWithError(w, http.StatusServiceUnavailable, "Live updates are disabled")
		return
	}
	h.live.ServeHTTP(w, r)
}
