package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shilo-maker/solupresenter-sub003/internal/models"
	"github.com/shilo-maker/solupresenter-sub003/internal/presenter"
)

// SongHandler handles the song library.
type SongHandler struct {
	db *gorm.DB
}

func NewSongHandler(db *gorm.DB) *SongHandler {
	return &SongHandler{db: db}
}

// LibrarySong keeps the list endpoint light; the full lyrics only travel
// when a single song is fetched.
type LibrarySong struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Tags     string `json:"tags"`
	UseCount int    `json:"use_count"`
}

// GetSongs returns a paginated, lightweight list of library songs
func (h *SongHandler) GetSongs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	search := c.Query("search")
	sortBy := c.DefaultQuery("sort", "newest")

	if limit > 200 {
		limit = 200 // Hard cap to protect the server
	}

	query := h.db.Model(&models.Song{})

	if search != "" {
		searchTerm := "%" + search + "%"
		query = query.Where("title ILIKE ? OR author ILIKE ? OR tags ILIKE ?",
			searchTerm, searchTerm, searchTerm)
	}

	var total int64
	query.Count(&total)

	switch sortBy {
	case "alphabetical":
		query = query.Order("title ASC")
	case "popular":
		query = query.Order("use_count DESC")
	default: // "newest"
		query = query.Order("id DESC")
	}

	var songs []LibrarySong
	result := query.Select("id, title, author, tags, use_count").
		Limit(limit).
		Offset(offset).
		Find(&songs)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": songs,
		"meta": gin.H{
			"total":  total,
			"limit":  limit,
			"offset": offset,
		},
	})
}

func (h *SongHandler) GetSong(c *gin.Context) {
	id := c.Param("id")

	var song models.Song
	if err := h.db.First(&song, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Song not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, song)
}

type songRequest struct {
	Title            string `json:"title" binding:"required"`
	Author           string `json:"author"`
	OriginalLanguage string `json:"original_language"`
	Lyrics           string `json:"lyrics" binding:"required"`
	Tags             string `json:"tags"`
}

func (h *SongHandler) CreateSong(c *gin.Context) {
	var req songRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	song := models.Song{
		Title:            req.Title,
		Author:           req.Author,
		OriginalLanguage: req.OriginalLanguage,
		Lyrics:           req.Lyrics,
		Tags:             req.Tags,
	}
	if err := h.db.Create(&song).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create song"})
		return
	}

	c.JSON(http.StatusCreated, song)
}

func (h *SongHandler) UpdateSong(c *gin.Context) {
	id := c.Param("id")

	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	// Protect read-only fields from being modified via the API
	delete(updateData, "id")
	delete(updateData, "use_count")
	delete(updateData, "last_used")

	result := h.db.Model(&models.Song{}).Where("id = ?", id).Updates(updateData)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update song"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Song not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Song updated successfully"})
}

func (h *SongHandler) DeleteSong(c *gin.Context) {
	id := c.Param("id")

	result := h.db.Delete(&models.Song{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete song"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Song not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Song deleted"})
}

// GetSongItem parses the stored lyrics into slides and returns the song as
// a ready-to-present setlist item. Fetching an item counts as usage.
func (h *SongHandler) GetSongItem(c *gin.Context) {
	id := c.Param("id")

	var song models.Song
	if err := h.db.First(&song, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Song not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	slides := presenter.ParseLyrics(song.Lyrics)
	item := presenter.NewSong(strconv.FormatUint(uint64(song.ID), 10), song.Title, slides, song.OriginalLanguage)

	h.db.Model(&song).Updates(map[string]interface{}{
		"use_count": gorm.Expr("use_count + 1"),
		"last_used": time.Now(),
	})

	c.JSON(http.StatusOK, item)
}
