package api

import (
	"net/http"
	"time"

	"mindvale-server/internal/domain/slot"
	resdto "mindvale-server/internal/handler/dto/response"
	"mindvale-server/internal/infra"
	"mindvale-server/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProviderHandler struct {
	providerQueries     queries.ProviderQueries
	availabilityQueries queries.AvailabilityQueries
}

func NewProviderHandler(providerQueries queries.ProviderQueries, availabilityQueries queries.AvailabilityQueries) *ProviderHandler {
	return &ProviderHandler{
		providerQueries:     providerQueries,
		availabilityQueries: availabilityQueries,
	}
}

// @Summary List providers
// @Description List active providers
// @Tags providers
// @Produce json
// @Success 200 {array} resdto.ProviderResponse
// @Router /providers [get]
func (h *ProviderHandler) ListProviders(c *gin.Context) {
	views, err := h.providerQueries.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.ProviderResponse, len(views))
	for i, rm := range views {
		response[i] = resdto.FromProviderView(rm)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get provider
// @Description Get provider by ID
// @Tags providers
// @Produce json
// @Param id path string true "Provider ID"
// @Success 200 {object} resdto.ProviderResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /providers/{id} [get]
func (h *ProviderHandler) GetProvider(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid provider ID format",
		})
		return
	}

	view, err := h.providerQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Provider not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromProviderView(view))
}

// @Summary Get provider availability
// @Description Candidate dates for a channel and, when date is given, annotated time labels
// @Tags providers
// @Produce json
// @Param id path string true "Provider ID"
// @Param channel query string true "Channel (Online or In-person)"
// @Param date query string false "Selected date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /providers/{id}/availability [get]
func (h *ProviderHandler) GetAvailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid provider ID format",
		})
		return
	}

	channelParam := c.Query("channel")
	if channelParam == "Video" {
		channelParam = slot.ChannelOnline.String()
	}
	channel, err := slot.NewChannel(channelParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid channel",
		})
		return
	}

	var date *time.Time
	if dateParam := c.Query("date"); dateParam != "" {
		parsed, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date format",
			})
			return
		}
		date = &parsed
	}

	view, err := h.availabilityQueries.ForProvider(c.Request.Context(), id, channel, date)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Provider not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}
