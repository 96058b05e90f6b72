package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"clubapi/models"
)

// GET /events
func (d *deps) getEvents(c *gin.Context) {
	events, err := d.events.GetAll()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GET /events/:id
func (d *deps) getEvent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	e, err := d.events.GetByID(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

type eventBody struct {
	TypeID int64  `json:"type_id"`
	Name   string `json:"name"`
	Date   string `json:"date"`
}

// validate distinguishes missing from malformed in message text only.
func (b *eventBody) validate() string {
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		return "Name is required."
	}
	if b.TypeID <= 0 {
		return "Event type is required."
	}
	if b.Date == "" {
		return "Date is required."
	}
	if _, err := time.Parse("2006-01-02", b.Date); err != nil {
		return "Date must be a valid YYYY-MM-DD calendar date."
	}
	return ""
}

// POST /events
func (d *deps) createEvent(c *gin.Context) {
	var body eventBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}
	if msg := body.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	e := models.Event{TypeID: body.TypeID, Name: body.Name, Date: body.Date}
	if err := d.events.Create(&e); err != nil {
		fail(c, err)
		return
	}
	d.purge(c, "events")
	c.JSON(http.StatusCreated, e)
}

// PUT /events/:id
func (d *deps) updateEvent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, err := d.events.GetByID(id); err != nil {
		fail(c, err)
		return
	}

	var body eventBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}
	if msg := body.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	e := models.Event{ID: id, TypeID: body.TypeID, Name: body.Name, Date: body.Date}
	if err := d.events.Update(&e); err != nil {
		fail(c, err)
		return
	}
	d.purge(c, "events")
	c.JSON(http.StatusOK, e)
}

// DELETE /events/:id
func (d *deps) deleteEvent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	deleted, err := d.events.Delete(id)
	if err != nil {
		fail(c, err)
		return
	}
	d.purge(c, "events")
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
