package event

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/arjunvnair/campus-event-backend/middleware"
)

// UpdateNotifier is told when an event's details change so registered
// participants can be informed. Implemented by the registration service.
type UpdateNotifier interface {
	EventUpdated(e *Event)
}

type Handler struct {
	Service  *Service
	Notifier UpdateNotifier
}

func NewHandler(s *Service, notifier UpdateNotifier) *Handler {
	return &Handler{Service: s, Notifier: notifier}
}

// POST /events
func (h *Handler) CreateEvent(c *gin.Context) {
	sc, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.Service.CreateEvent(&req, sc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, event)
}

// GET /events
func (h *Handler) ListEvents(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	events, err := h.Service.ListEvents(limit, offset, c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// GET /events/mine
func (h *Handler) ListMyEvents(c *gin.Context) {
	sc, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	events, err := h.Service.ListMyEvents(sc, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// GET /events/:id
func (h *Handler) GetEvent(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	event, err := h.Service.GetEventByID(id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrEventNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, event)
}

// PUT /events/:id
func (h *Handler) UpdateEvent(c *gin.Context) {
	sc, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ID = id

	event, err := h.Service.UpdateEvent(&req, sc)
	if err != nil {
		c.JSON(statusForEventErr(err), gin.H{"error": err.Error()})
		return
	}

	if h.Notifier != nil {
		h.Notifier.EventUpdated(event)
	}

	c.JSON(http.StatusOK, event)
}

// DELETE /events/:id
func (h *Handler) DeleteEvent(c *gin.Context) {
	sc, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	if err := h.Service.DeleteEvent(id, sc); err != nil {
		c.JSON(statusForEventErr(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	return uint(id), err
}

func statusForEventErr(err error) int {
	switch {
	case errors.Is(err, ErrEventNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotOwner):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}
