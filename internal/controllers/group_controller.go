package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/navdeck/navdeck/internal/models"
	"github.com/navdeck/navdeck/internal/ordering"
	"github.com/navdeck/navdeck/internal/ws"
)

type GroupController struct {
	DB     *gorm.DB
	Orders *ordering.Engine
	Hub    *ws.Hub
}

type createGroupRequest struct {
	Name     string `json:"name" binding:"required"`
	OrderNum *int   `json:"order_num"`
}

type updateGroupRequest struct {
	Name     *string `json:"name"`
	OrderNum *int    `json:"order_num"`
}

func (gc *GroupController) List(c *gin.Context) {
	groups, err := gc.Orders.ListGroups()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, groups)
}

func (gc *GroupController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var group models.Group
	if err := gc.DB.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, group)
}

func (gc *GroupController) Create(c *gin.Context) {
	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	orderNum := 0
	if req.OrderNum != nil {
		orderNum = *req.OrderNum
	} else {
		next, err := gc.Orders.NextGroupPosition()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		orderNum = next
	}
	group := models.Group{Name: req.Name, OrderNum: orderNum}
	if err := gc.DB.Create(&group).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	gc.Hub.Broadcast(ws.Event{Type: "created", Scope: "groups"})
	c.JSON(http.StatusCreated, group)
}

func (gc *GroupController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var group models.Group
	if err := gc.DB.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	var req updateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name must not be empty"})
			return
		}
		group.Name = *req.Name
	}
	if req.OrderNum != nil {
		group.OrderNum = *req.OrderNum
	}
	if err := gc.DB.Save(&group).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	gc.Hub.Broadcast(ws.Event{Type: "updated", Scope: "groups"})
	c.JSON(http.StatusOK, group)
}

// Delete removes a group and all of its sites in one transaction. The
// schema-level cascade covers postgres; the explicit site delete keeps
// the behavior identical on every backend.
func (gc *GroupController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var group models.Group
	if err := gc.DB.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	err := gc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", group.ID).Delete(&models.Site{}).Error; err != nil {
			return err
		}
		return tx.Delete(&group).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	gc.Hub.Broadcast(ws.Event{Type: "deleted", Scope: "groups"})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func parseID(c *gin.Context) (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(n), true
}
