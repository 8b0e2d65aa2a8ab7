package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/navdeck/navdeck/internal/ordering"
	"github.com/navdeck/navdeck/internal/ws"
)

type OrderController struct {
	Orders *ordering.Engine
	Hub    *ws.Hub
}

// SetGroupOrder applies a whole-scope reordering of groups. The batch
// is atomic: a single bad assignment means nothing was written and the
// caller should re-fetch.
func (oc *OrderController) SetGroupOrder(c *gin.Context) {
	var assignments []ordering.Assignment
	if err := c.ShouldBindJSON(&assignments); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if err := oc.Orders.ReorderGroups(assignments); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ordering.ErrNotInScope) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"success": false, "message": err.Error()})
		return
	}
	oc.Hub.Broadcast(ws.Event{Type: "reordered", Scope: "groups"})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SetSiteOrder applies a whole-scope reordering of one group's sites.
func (oc *OrderController) SetSiteOrder(c *gin.Context) {
	var assignments []ordering.Assignment
	if err := c.ShouldBindJSON(&assignments); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if err := oc.Orders.ReorderSites(assignments); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ordering.ErrNotInScope) || errors.Is(err, ordering.ErrMixedGroups) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"success": false, "message": err.Error()})
		return
	}
	oc.Hub.Broadcast(ws.Event{Type: "reordered", Scope: "sites"})
	c.JSON(http.StatusOK, gin.H{"success": true})
}
