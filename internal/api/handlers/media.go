package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shilo-maker/solupresenter-sub003/internal/models"
	"github.com/shilo-maker/solupresenter-sub003/internal/storage"
	"github.com/shilo-maker/solupresenter-sub003/internal/utils"
)

// MediaHandler handles uploads to the media bucket: backgrounds, slide
// images and backing tracks.
type MediaHandler struct {
	db      *gorm.DB
	storage *storage.Client
}

func NewMediaHandler(db *gorm.DB, st *storage.Client) *MediaHandler {
	return &MediaHandler{db: db, storage: st}
}

// PreAnalyzeFile reads the uploaded file in memory and extracts audio tags.
// It does NOT upload to storage or save to DB yet.
func (h *MediaHandler) PreAnalyzeFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to open file"})
		return
	}
	defer file.Close()

	// Images have no tags; fall back to the cleaned filename
	metadata, err := tag.ReadFrom(file)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"filename": fileHeader.Filename,
			"name":     utils.CleanFilename(fileHeader.Filename),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"filename": fileHeader.Filename,
		"name":     utils.CleanFilename(fileHeader.Filename),
		"format":   string(metadata.Format()),
		"title":    metadata.Title(),
		"artist":   metadata.Artist(),
		"album":    metadata.Album(),
	})
}

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// UploadFile stores the file in the media bucket and records it.
func (h *MediaHandler) UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to open file"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	prefix := "audio"
	if imageExtensions[ext] {
		prefix = "images"
	}

	name := c.PostForm("name")
	if name == "" {
		name = utils.CleanFilename(fileHeader.Filename)
	}
	key := fmt.Sprintf("%s/%s%s", prefix, utils.Sanitize(name, "upload"), ext)

	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.storage.UploadMediaFile(key, file, contentType); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}

	media := models.MediaFile{
		Key:         key,
		Name:        name,
		ContentType: contentType,
		SizeBytes:   fileHeader.Size,
		Title:       c.PostForm("title"),
		Artist:      c.PostForm("artist"),
		Album:       c.PostForm("album"),
	}
	if err := h.db.Create(&media).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A file with this name already exists"})
		return
	}

	c.JSON(http.StatusCreated, media)
}

// GetFiles lists media records, optionally filtered to "images" or "audio".
func (h *MediaHandler) GetFiles(c *gin.Context) {
	query := h.db.Model(&models.MediaFile{}).Order("id DESC")
	if kind := c.Query("kind"); kind != "" {
		query = query.Where("key LIKE ?", kind+"/%")
	}

	var files []models.MediaFile
	if err := query.Find(&files).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": files})
}

// DownloadFile streams the stored object back to the client.
func (h *MediaHandler) DownloadFile(c *gin.Context) {
	var media models.MediaFile
	if err := h.db.First(&media, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	obj, err := h.storage.DownloadMediaFile(media.Key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage error"})
		return
	}
	defer obj.Body.Close()

	contentType := media.ContentType
	if contentType == "" {
		contentType = obj.ContentType
	}

	c.Header("Content-Type", contentType)
	c.Header("Content-Length", fmt.Sprintf("%d", obj.ContentLength))
	io.Copy(c.Writer, obj.Body)
}

func (h *MediaHandler) DeleteFile(c *gin.Context) {
	var media models.MediaFile
	if err := h.db.First(&media, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	if err := h.storage.DeleteMediaFile(media.Key); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage error"})
		return
	}
	if err := h.db.Delete(&media).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted"})
}
