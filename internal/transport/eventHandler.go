package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kutanig/explore-with-me/internal/service"
)

type EventHandler struct {
	eventService service.EventService
	statsService service.StatsService
}

func NewEventHandler(eventService service.EventService, statsService service.StatsService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		statsService: statsService,
	}
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	var req service.NewEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) GetUserEvents(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	from, size, ok := parsePagination(c)
	if !ok {
		return
	}

	events, err := h.eventService.GetUserEvents(c.Request.Context(), userID, from, size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) GetUserEvent(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	eventID, ok := parseIDParam(c, "eventId")
	if !ok {
		return
	}

	event, err := h.eventService.GetUserEvent(c.Request.Context(), userID, eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) UpdateUserEvent(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	eventID, ok := parseIDParam(c, "eventId")
	if !ok {
		return
	}

	var req service.UpdateEventUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.eventService.UpdateUserEvent(c.Request.Context(), userID, eventID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) UpdateAdminEvent(c *gin.Context) {
	eventID, ok := parseIDParam(c, "eventId")
	if !ok {
		return
	}

	var req service.UpdateEventAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.eventService.UpdateAdminEvent(c.Request.Context(), eventID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) SearchAdminEvents(c *gin.Context) {
	from, size, ok := parsePagination(c)
	if !ok {
		return
	}
	users, ok := parseIDList(c, "users")
	if !ok {
		return
	}
	categories, ok := parseIDList(c, "categories")
	if !ok {
		return
	}
	rangeStart, ok := parseTimeQuery(c, "rangeStart")
	if !ok {
		return
	}
	rangeEnd, ok := parseTimeQuery(c, "rangeEnd")
	if !ok {
		return
	}

	events, err := h.eventService.SearchAdminEvents(c.Request.Context(), &service.AdminSearchParams{
		Users:      users,
		States:     c.QueryArray("states"),
		Categories: categories,
		RangeStart: rangeStart,
		RangeEnd:   rangeEnd,
		From:       from,
		Size:       size,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// GetPublishedEvent отдает опубликованное событие и фиксирует просмотр
func (h *EventHandler) GetPublishedEvent(c *gin.Context) {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	event, err := h.eventService.GetPublishedEvent(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.statsService.RecordHit(c.Request.Context(), c.Request.URL.Path, c.ClientIP())

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) SearchPublishedEvents(c *gin.Context) {
	from, size, ok := parsePagination(c)
	if !ok {
		return
	}
	categories, ok := parseIDList(c, "categories")
	if !ok {
		return
	}
	paid, ok := parseBoolQuery(c, "paid")
	if !ok {
		return
	}
	rangeStart, ok := parseTimeQuery(c, "rangeStart")
	if !ok {
		return
	}
	rangeEnd, ok := parseTimeQuery(c, "rangeEnd")
	if !ok {
		return
	}

	events, err := h.eventService.SearchPublishedEvents(c.Request.Context(), &service.PublicSearchParams{
		Text:          c.Query("text"),
		Categories:    categories,
		Paid:          paid,
		RangeStart:    rangeStart,
		RangeEnd:      rangeEnd,
		OnlyAvailable: c.Query("onlyAvailable") == "true",
		Sort:          c.Query("sort"),
		From:          from,
		Size:          size,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.statsService.RecordHit(c.Request.Context(), c.Request.URL.Path, c.ClientIP())

	c.JSON(http.StatusOK, events)
}
