package database

import (
	"encoding/json"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/shilo-maker/solupresenter-sub003/internal/models"
	"github.com/shilo-maker/solupresenter-sub003/internal/presenter"
)

// GormSetlistStore persists presenter setlists through gorm. It satisfies
// presenter.SetlistStore.
type GormSetlistStore struct {
	db *gorm.DB
}

func NewSetlistStore(db *gorm.DB) *GormSetlistStore {
	return &GormSetlistStore{db: db}
}

// LoadSetlist reads the setlist and decodes every stored item back into its
// presenter form, ordered by position.
func (s *GormSetlistStore) LoadSetlist(id uint) (string, []presenter.Item, error) {
	var setlist models.Setlist
	err := s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&setlist, id).Error
	if err != nil {
		return "", nil, fmt.Errorf("load setlist %d: %w", id, err)
	}

	items := make([]presenter.Item, 0, len(setlist.Items))
	for _, row := range setlist.Items {
		var item presenter.Item
		if err := json.Unmarshal([]byte(row.Payload), &item); err != nil {
			return "", nil, fmt.Errorf("decode setlist %d item %d: %w", id, row.Position, err)
		}
		items = append(items, item)
	}

	log.Printf("✅ Loaded setlist %q (%d items)", setlist.Name, len(items))
	return setlist.Name, items, nil
}

// SaveSetlist writes the given items as a setlist. A setlist already linked
// to the room is replaced in place; otherwise a new one is created.
func (s *GormSetlistStore) SaveSetlist(roomID, name string, items []presenter.Item) (uint, error) {
	var id uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var setlist models.Setlist
		err := tx.Where("room_id = ?", roomID).First(&setlist).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			setlist = models.Setlist{Name: name, RoomID: roomID}
			if err := tx.Create(&setlist).Error; err != nil {
				return fmt.Errorf("create setlist: %w", err)
			}
		case err != nil:
			return fmt.Errorf("find setlist for room %s: %w", roomID, err)
		default:
			setlist.Name = name
			if err := tx.Save(&setlist).Error; err != nil {
				return fmt.Errorf("update setlist: %w", err)
			}
			if err := tx.Where("setlist_id = ?", setlist.ID).
				Delete(&models.SetlistItem{}).Error; err != nil {
				return fmt.Errorf("clear setlist items: %w", err)
			}
		}

		for pos, item := range items {
			payload, err := json.Marshal(item)
			if err != nil {
				return fmt.Errorf("encode item %d: %w", pos, err)
			}
			row := models.SetlistItem{
				SetlistID: setlist.ID,
				Position:  pos,
				Kind:      string(item.Kind),
				Payload:   string(payload),
			}
			if item.Kind == presenter.KindSong && !item.IsTemporary && item.ID != "" {
				if songID, ok := parseSongID(item.ID); ok {
					row.SongID = &songID
				}
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("save item %d: %w", pos, err)
			}
		}

		id = setlist.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Printf("✅ Saved setlist %q (%d items) for room %s", name, len(items), roomID)
	return id, nil
}

// LinkSetlist marks the setlist as the one live in the room.
func (s *GormSetlistStore) LinkSetlist(roomID string, id uint) error {
	// Only one setlist can be linked to a room at a time
	if err := s.db.Model(&models.Setlist{}).
		Where("room_id = ?", roomID).
		Update("room_id", "").Error; err != nil {
		return fmt.Errorf("unlink previous setlist: %w", err)
	}
	if err := s.db.Model(&models.Setlist{}).
		Where("id = ?", id).
		Update("room_id", roomID).Error; err != nil {
		return fmt.Errorf("link setlist %d: %w", id, err)
	}
	return nil
}

// UnlinkSetlist detaches whatever setlist the room holds.
func (s *GormSetlistStore) UnlinkSetlist(roomID string) error {
	return s.db.Model(&models.Setlist{}).
		Where("room_id = ?", roomID).
		Update("room_id", "").Error
}

func parseSongID(id string) (uint, bool) {
	var n uint
	if _, err := fmt.Sscanf(id, "%d", &n); err != nil {
		return 0, false
	}
	return n, true
}
