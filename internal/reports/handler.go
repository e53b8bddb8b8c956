package reports

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/arjunvnair/campus-event-backend/internal/event"
	"github.com/arjunvnair/campus-event-backend/internal/fieldschema"
	"github.com/arjunvnair/campus-event-backend/middleware"
)

type Handler struct {
	service Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{service: svc}
}

// GET /events/:id/participants/pdf
func (h *Handler) ExportPDF(c *gin.Context) {
	h.export(c, FormatPDF)
}

// GET /events/:id/participants/excel
func (h *Handler) ExportExcel(c *gin.Context) {
	h.export(c, FormatExcel)
}

func (h *Handler) export(c *gin.Context, format string) {
	sc, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	fieldsPrinted := c.Query("fields_printed")

	data, filename, mime, err := h.service.ExportParticipants(uint(eventID), format, fieldsPrinted, sc)
	if err != nil {
		switch {
		case errors.Is(err, event.ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, event.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, fieldschema.ErrNoFieldsSelected):
			c.JSON(http.StatusBadRequest, gin.H{"error": "select at least one field to export"})
		case errors.Is(err, ErrExportGenerationFailed):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate report"})
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, mime, data)
}
