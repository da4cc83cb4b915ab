package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shilo-maker/solupresenter-sub003/internal/bible"
)

// BibleHandler proxies passage lookups for the operator console.
type BibleHandler struct {
	client *bible.Client
}

func NewBibleHandler(client *bible.Client) *BibleHandler {
	return &BibleHandler{client: client}
}

// Lookup fetches a passage and returns it as a presentable item.
// GET /bible?ref=John+3:16-18
func (h *BibleHandler) Lookup(c *gin.Context) {
	ref := c.Query("ref")
	if ref == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing ref parameter"})
		return
	}

	passage, err := h.client.Lookup(ref)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Passage not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reference": passage.Reference,
		"item":      passage.ToItem(),
	})
}
