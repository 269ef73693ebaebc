package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tripsmith/internal/weather"
)

type WeatherHandler struct {
	src weather.Source
}

func NewWeatherHandler(src weather.Source) *WeatherHandler {
	return &WeatherHandler{src: src}
}

// Get handles GET /api/weather?city=.
func (h *WeatherHandler) Get(c *gin.Context) {
	city := strings.TrimSpace(c.Query("city"))
	if city == "" {
		writeError(c, http.StatusBadRequest, "missing city")
		return
	}
	writeJSON(c, http.StatusOK, h.src.GetWeather(c.Request.Context(), city))
}
