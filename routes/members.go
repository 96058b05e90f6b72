package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"clubapi/models"
)

// GET /members
func (d *deps) getMembers(c *gin.Context) {
	members, err := d.members.GetAll()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

// GET /members/:memberId
func (d *deps) getMember(c *gin.Context) {
	id, ok := parseID(c, "memberId")
	if !ok {
		return
	}
	m, err := d.members.GetByID(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

type memberBody struct {
	Name                string  `json:"name"`
	PreferredEventTypes []int64 `json:"preferredEventTypes"`
}

// POST /members
func (d *deps) createMember(c *gin.Context) {
	var body memberBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name is required."})
		return
	}

	m := models.Member{Name: name, PreferredEventTypes: body.PreferredEventTypes}
	if err := d.members.Create(&m); err != nil {
		fail(c, err)
		return
	}
	d.purge(c, "members")

	created, err := d.members.GetByID(m.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PUT /members/:memberId
// The preference list is replaced wholesale, never merged.
func (d *deps) updateMember(c *gin.Context) {
	id, ok := parseID(c, "memberId")
	if !ok {
		return
	}
	if _, err := d.members.GetByID(id); err != nil {
		fail(c, err)
		return
	}

	var body memberBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name is required."})
		return
	}

	m := models.Member{ID: id, Name: name, PreferredEventTypes: body.PreferredEventTypes}
	if err := d.members.Update(&m); err != nil {
		fail(c, err)
		return
	}
	d.purge(c, "members")

	updated, err := d.members.GetByID(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /members/:memberId
func (d *deps) deleteMember(c *gin.Context) {
	id, ok := parseID(c, "memberId")
	if !ok {
		return
	}
	if err := d.members.Delete(id); err != nil {
		fail(c, err)
		return
	}
	d.purge(c, "members")
	c.Status(http.StatusNoContent)
}
