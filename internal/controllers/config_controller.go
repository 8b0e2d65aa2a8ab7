package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/navdeck/navdeck/internal/models"
	"github.com/navdeck/navdeck/internal/ws"
)

type ConfigController struct {
	DB  *gorm.DB
	Hub *ws.Hub
}

type setConfigRequest struct {
	Value string `json:"value"`
}

func (cc *ConfigController) List(c *gin.Context) {
	entries := make([]models.ConfigEntry, 0)
	if err := cc.DB.Order("key ASC").Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (cc *ConfigController) Get(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))
	var entry models.ConfigEntry
	if err := cc.DB.Where("key = ?", key).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (cc *ConfigController) Set(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid key"})
		return
	}
	var req setConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry := models.ConfigEntry{Key: key, Value: req.Value}
	err := cc.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	cc.Hub.Broadcast(ws.Event{Type: "updated", Scope: "configs"})
	c.JSON(http.StatusOK, entry)
}

func (cc *ConfigController) Delete(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))
	res := cc.DB.Where("key = ?", key).Delete(&models.ConfigEntry{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusOK, gin.H{"success": false})
		return
	}
	cc.Hub.Broadcast(ws.Event{Type: "deleted", Scope: "configs"})
	c.JSON(http.StatusOK, gin.H{"success": true})
}
