package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"clubapi/models"
)

// GET /event-types
func (d *deps) getEventTypes(c *gin.Context) {
	types, err := d.types.GetAll()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

// GET /event-types/:id
func (d *deps) getEventType(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := d.types.GetByID(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

type eventTypeBody struct {
	Name string `json:"name"`
}

// POST /event-types
func (d *deps) createEventType(c *gin.Context) {
	var body eventTypeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name is required."})
		return
	}

	t := models.EventType{Name: name}
	if err := d.types.Create(&t); err != nil {
		fail(c, err)
		return
	}
	d.purge(c, "event-types")
	c.JSON(http.StatusCreated, t)
}

// PUT /event-types/:id
func (d *deps) updateEventType(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	// Existence before content validation, so a missing id reads as 404.
	if _, err := d.types.GetByID(id); err != nil {
		fail(c, err)
		return
	}

	var body eventTypeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name is required."})
		return
	}

	t := models.EventType{ID: id, Name: name}
	if err := d.types.Update(&t); err != nil {
		fail(c, err)
		return
	}
	d.purge(c, "event-types")
	c.JSON(http.StatusOK, t)
}

// DELETE /event-types/:id
func (d *deps) deleteEventType(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	deleted, err := d.types.Delete(id)
	if err != nil {
		fail(c, err)
		return
	}
	d.purge(c, "event-types")
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
