package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shilo-maker/solupresenter-sub003/internal/models"
)

// SetlistHandler lists and prunes saved setlists. Loading one into a live
// session goes through the room control endpoints instead.
type SetlistHandler struct {
	db *gorm.DB
}

func NewSetlistHandler(db *gorm.DB) *SetlistHandler {
	return &SetlistHandler{db: db}
}

type setlistSummary struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	RoomID    string `json:"room_id"`
	ItemCount int64  `json:"item_count"`
}

func (h *SetlistHandler) GetSetlists(c *gin.Context) {
	var setlists []models.Setlist
	if err := h.db.Order("updated_at DESC").Find(&setlists).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	summaries := make([]setlistSummary, 0, len(setlists))
	for _, sl := range setlists {
		var count int64
		h.db.Model(&models.SetlistItem{}).Where("setlist_id = ?", sl.ID).Count(&count)
		summaries = append(summaries, setlistSummary{
			ID:        sl.ID,
			Name:      sl.Name,
			RoomID:    sl.RoomID,
			ItemCount: count,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": summaries})
}

func (h *SetlistHandler) GetSetlist(c *gin.Context) {
	var setlist models.Setlist
	err := h.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&setlist, c.Param("id")).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Setlist not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, setlist)
}

func (h *SetlistHandler) DeleteSetlist(c *gin.Context) {
	id := c.Param("id")

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("setlist_id = ?", id).Delete(&models.SetlistItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Setlist{}, id).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete setlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Setlist deleted"})
}
