package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// POST /members/:memberId/events/:eventId
func (d *deps) registerMemberForEvent(c *gin.Context) {
	memberID, ok := parseID(c, "memberId")
	if !ok {
		return
	}
	eventID, ok := parseID(c, "eventId")
	if !ok {
		return
	}

	if err := d.regs.Register(memberID, eventID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Registered!"})
}

// DELETE /members/:memberId/events/:eventId
func (d *deps) unregisterMemberFromEvent(c *gin.Context) {
	memberID, ok := parseID(c, "memberId")
	if !ok {
		return
	}
	eventID, ok := parseID(c, "eventId")
	if !ok {
		return
	}

	if err := d.regs.Cancel(memberID, eventID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Registration cancelled."})
}

// POST /members/:memberId/event-types/:typeId
func (d *deps) addPreference(c *gin.Context) {
	memberID, ok := parseID(c, "memberId")
	if !ok {
		return
	}
	typeID, ok := parseID(c, "typeId")
	if !ok {
		return
	}

	if err := d.regs.AddPreference(memberID, typeID); err != nil {
		fail(c, err)
		return
	}
	d.purge(c, "members")
	c.JSON(http.StatusCreated, gin.H{"message": "Preference added."})
}

// DELETE /members/:memberId/event-types/:typeId
func (d *deps) removePreference(c *gin.Context) {
	memberID, ok := parseID(c, "memberId")
	if !ok {
		return
	}
	typeID, ok := parseID(c, "typeId")
	if !ok {
		return
	}

	if err := d.regs.RemovePreference(memberID, typeID); err != nil {
		fail(c, err)
		return
	}
	d.purge(c, "members")
	c.JSON(http.StatusOK, gin.H{"message": "Preference removed."})
}
