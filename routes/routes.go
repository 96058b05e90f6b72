package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"clubapi/apperr"
	"clubapi/models"
	"clubapi/utils"
)

// deps holds the injected repositories; handlers never reach for a global.
type deps struct {
	types   models.EventTypeRepository
	events  models.EventRepository
	members models.MemberRepository
	regs    models.RegistrationRepository
	inv     *utils.CacheInvalidator
}

func RegisterRoutes(
	server *gin.Engine,
	types models.EventTypeRepository,
	events models.EventRepository,
	members models.MemberRepository,
	regs models.RegistrationRepository,
	inv *utils.CacheInvalidator,
) {
	d := &deps{types: types, events: events, members: members, regs: regs, inv: inv}

	server.GET("/event-types", d.getEventTypes)
	server.GET("/event-types/:id", d.getEventType)
	server.POST("/event-types", d.createEventType)
	server.PUT("/event-types/:id", d.updateEventType)
	server.DELETE("/event-types/:id", d.deleteEventType)

	server.GET("/events", d.getEvents)
	server.GET("/events/:id", d.getEvent)
	server.POST("/events", d.createEvent)
	server.PUT("/events/:id", d.updateEvent)
	server.DELETE("/events/:id", d.deleteEvent)

	// Param name must match the nested routes below; gin's tree rejects
	// different wildcard names at the same position.
	server.GET("/members", d.getMembers)
	server.GET("/members/:memberId", d.getMember)
	server.POST("/members", d.createMember)
	server.PUT("/members/:memberId", d.updateMember)
	server.DELETE("/members/:memberId", d.deleteMember)

	server.POST("/members/:memberId/events/:eventId", d.registerMemberForEvent)
	server.DELETE("/members/:memberId/events/:eventId", d.unregisterMemberFromEvent)
	server.POST("/members/:memberId/event-types/:typeId", d.addPreference)
	server.DELETE("/members/:memberId/event-types/:typeId", d.removePreference)

	server.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// parseID pulls an int64 path parameter, answering 400 itself on garbage.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse " + name + "."})
		return 0, false
	}
	return id, true
}

func fail(c *gin.Context, err error) {
	c.JSON(apperr.Status(err), gin.H{"message": apperr.Message(err)})
}

func (d *deps) purge(c *gin.Context, namespaces ...string) {
	if d.inv == nil {
		return
	}
	for _, ns := range namespaces {
		d.inv.PurgeNamespace(c, ns)
	}
}
