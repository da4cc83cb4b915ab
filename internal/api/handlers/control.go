package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shilo-maker/solupresenter-sub003/internal/presenter"
)

// Control endpoints map one-to-one onto session operations. Every call that
// changes what viewers see broadcasts before it returns, so a 200 here means
// the screens already updated.

func controlError(c *gin.Context, err error) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	case errors.Is(err, presenter.ErrUnsavedChanges):
		c.JSON(http.StatusConflict, gin.H{"error": "Setlist has unsaved changes"})
	case errors.Is(err, presenter.ErrIndexOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Index out of range"})
	case errors.Is(err, presenter.ErrNotATool):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Entry is not an overlay tool"})
	case errors.Is(err, presenter.ErrNoMessages):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Messages tool has no enabled messages"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// --- Selection & navigation ---

func (h *RoomHandler) SelectItem(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		Index int `json:"index"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	controlError(c, sess.SelectItem(req.Index))
}

func (h *RoomHandler) SelectSlide(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		ItemIndex  int `json:"item_index"`
		SlideIndex int `json:"slide_index"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	controlError(c, sess.SelectSlide(req.ItemIndex, req.SlideIndex))
}

func (h *RoomHandler) SelectCombined(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		ItemIndex int `json:"item_index"`
		Unit      int `json:"unit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	controlError(c, sess.SelectCombined(req.ItemIndex, req.Unit))
}

func (h *RoomHandler) NextSlide(c *gin.Context) {
	if sess, ok := h.session(c); ok {
		sess.NextSlide()
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func (h *RoomHandler) PrevSlide(c *gin.Context) {
	if sess, ok := h.session(c); ok {
		sess.PrevSlide()
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func (h *RoomHandler) NextItem(c *gin.Context) {
	if sess, ok := h.session(c); ok {
		sess.NextItem()
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func (h *RoomHandler) PrevItem(c *gin.Context) {
	if sess, ok := h.session(c); ok {
		sess.PrevItem()
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// --- Display ---

func (h *RoomHandler) ToggleBlank(c *gin.Context) {
	if sess, ok := h.session(c); ok {
		sess.ToggleBlank()
		c.JSON(http.StatusOK, gin.H{"blank": sess.Snapshot().BlankActive})
	}
}

func (h *RoomHandler) SetDisplayMode(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		Mode string `json:"mode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	mode := presenter.DisplayMode(req.Mode)
	if mode != presenter.ModeBilingual && mode != presenter.ModeOriginalOnly {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown display mode"})
		return
	}
	sess.SetDisplayMode(mode)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *RoomHandler) SetBackground(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	sess.SetBackground(req.URL)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *RoomHandler) QuickSlide(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	sess.SetQuickSlide(req.Text)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *RoomHandler) ShowTransientItem(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var item presenter.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item payload"})
		return
	}
	sess.ShowTransientItem(item)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *RoomHandler) ShowLocalMedia(c *gin.Context) {
	if sess, ok := h.session(c); ok {
		sess.ShowLocalMedia()
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// --- Overlay tools ---

func (h *RoomHandler) StartCountdown(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		Index int `json:"index"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	controlError(c, sess.StartCountdown(req.Index))
}

func (h *RoomHandler) StopCountdown(c *gin.Context) {
	if sess, ok := h.session(c); ok {
		sess.StopCountdown()
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func (h *RoomHandler) StartMessages(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		Index int `json:"index"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	controlError(c, sess.StartMessages(req.Index))
}

func (h *RoomHandler) StopMessages(c *gin.Context) {
	if sess, ok := h.session(c); ok {
		sess.StopMessages()
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func (h *RoomHandler) ShowAnnouncement(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	sess.ShowAnnouncement(req.Text)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *RoomHandler) HideAnnouncement(c *gin.Context) {
	if sess, ok := h.session(c); ok {
		sess.HideAnnouncement()
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// --- Setlist mutations ---

func (h *RoomHandler) AppendItem(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var item presenter.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item payload"})
		return
	}
	sess.Append(item)
	c.JSON(http.StatusCreated, gin.H{"status": "ok"})
}

func (h *RoomHandler) InsertItem(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		Index int            `json:"index"`
		Item  presenter.Item `json:"item"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	controlError(c, sess.InsertAt(req.Index, req.Item))
}

func (h *RoomHandler) RemoveItem(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid index"})
		return
	}
	controlError(c, sess.RemoveAt(index))
}

func (h *RoomHandler) MoveItem(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		From int `json:"from"`
		To   int `json:"to"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	controlError(c, sess.MoveTo(req.From, req.To))
}

// --- Setlist persistence ---

func (h *RoomHandler) LoadSetlist(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		SetlistID uint   `json:"setlist_id" binding:"required"`
		OnDirty   string `json:"on_dirty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	res := presenter.ResolveAsk
	switch req.OnDirty {
	case "save":
		res = presenter.ResolveSave
	case "discard":
		res = presenter.ResolveDiscard
	}

	controlError(c, sess.LoadFromStore(h.store, req.SetlistID, res))
}

func (h *RoomHandler) SaveSetlist(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	controlError(c, sess.SaveToStore(h.store, req.Name))
}
