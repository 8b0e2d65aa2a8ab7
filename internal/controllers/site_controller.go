package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/navdeck/navdeck/internal/models"
	"github.com/navdeck/navdeck/internal/ordering"
	"github.com/navdeck/navdeck/internal/ws"
)

type SiteController struct {
	DB     *gorm.DB
	Orders *ordering.Engine
	Hub    *ws.Hub
}

type createSiteRequest struct {
	GroupID     uint   `json:"group_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	URL         string `json:"url" binding:"required"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
	OrderNum    *int   `json:"order_num"`
}

type updateSiteRequest struct {
	GroupID     *uint   `json:"group_id"`
	Name        *string `json:"name"`
	URL         *string `json:"url"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
	Notes       *string `json:"notes"`
	OrderNum    *int    `json:"order_num"`
}

func (sc *SiteController) List(c *gin.Context) {
	var groupID *uint
	if v := strings.TrimSpace(c.Query("groupId")); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid groupId"})
			return
		}
		id := uint(n)
		groupID = &id
	}
	sites, err := sc.Orders.ListSites(groupID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sites)
}

func (sc *SiteController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var site models.Site
	if err := sc.DB.First(&site, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, site)
}

func (sc *SiteController) Create(c *gin.Context) {
	var req createSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var group models.Group
	if err := sc.DB.First(&group, req.GroupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "group not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	orderNum := 0
	if req.OrderNum != nil {
		orderNum = *req.OrderNum
	} else {
		next, err := sc.Orders.NextSitePosition(req.GroupID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		orderNum = next
	}
	site := models.Site{
		GroupID:     req.GroupID,
		Name:        req.Name,
		URL:         req.URL,
		Icon:        req.Icon,
		Description: req.Description,
		Notes:       req.Notes,
		OrderNum:    orderNum,
	}
	if err := sc.DB.Create(&site).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sc.Hub.Broadcast(ws.Event{Type: "created", Scope: "sites", GroupID: &site.GroupID})
	c.JSON(http.StatusCreated, site)
}

func (sc *SiteController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var site models.Site
	if err := sc.DB.First(&site, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	var req updateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name must not be empty"})
			return
		}
		site.Name = *req.Name
	}
	if req.URL != nil {
		if strings.TrimSpace(*req.URL) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "url must not be empty"})
			return
		}
		site.URL = *req.URL
	}
	if req.Icon != nil {
		site.Icon = *req.Icon
	}
	if req.Description != nil {
		site.Description = *req.Description
	}
	if req.Notes != nil {
		site.Notes = *req.Notes
	}
	moved := req.GroupID != nil && *req.GroupID != site.GroupID
	if moved {
		var group models.Group
		if err := sc.DB.First(&group, *req.GroupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "group not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		site.GroupID = *req.GroupID
	}
	if req.OrderNum != nil {
		site.OrderNum = *req.OrderNum
	} else if moved {
		// A move without an explicit position appends to the target group.
		next, err := sc.Orders.NextSitePosition(site.GroupID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		site.OrderNum = next
	}
	if err := sc.DB.Save(&site).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sc.Hub.Broadcast(ws.Event{Type: "updated", Scope: "sites", GroupID: &site.GroupID})
	c.JSON(http.StatusOK, site)
}

func (sc *SiteController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var site models.Site
	if err := sc.DB.First(&site, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	if err := sc.DB.Delete(&site).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	sc.Hub.Broadcast(ws.Event{Type: "deleted", Scope: "sites", GroupID: &site.GroupID})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// QRCode renders the site URL as a PNG for quick hand-off to a phone.
func (sc *SiteController) QRCode(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var site models.Site
	if err := sc.DB.First(&site, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "site not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	png, err := qrcode.Encode(site.URL, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
