package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shilo-maker/solupresenter-sub003/internal/presenter"
)

// PresetHandler serves ready-made tool items defined in presets.yaml, so
// operators can drop a preconfigured countdown or message set into a setlist.
type PresetHandler struct{}

func NewPresetHandler() *PresetHandler {
	return &PresetHandler{}
}

func (h *PresetHandler) GetCountdownPreset(c *gin.Context) {
	item, ok := presenter.CountdownToolFromPreset(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown countdown preset"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *PresetHandler) GetMessagesPreset(c *gin.Context) {
	item, ok := presenter.MessagesToolFromPreset(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown messages preset"})
		return
	}
	c.JSON(http.StatusOK, item)
}
