package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"scene-compiler/internal/compiler/models"
)

// ============================================================
// Room metadata
// ============================================================

// roomEntry accepts both "approximateSize" and the shorter "size".
type roomEntry struct {
	models.RoomMeta
	ShortSize string `json:"size"`
}

// ParseRooms decodes the ordered room metadata list. An empty body is an
// empty list.
func ParseRooms(r io.Reader) ([]models.RoomMeta, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read rooms: %w", err)
	}
	return DecodeRooms(data)
}

func DecodeRooms(data []byte) ([]models.RoomMeta, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var entries []roomEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidRooms, err)
	}

	rooms := make([]models.RoomMeta, 0, len(entries))
	for _, e := range entries {
		meta := e.RoomMeta
		if meta.Size == "" {
			meta.Size = e.ShortSize
		}
		rooms = append(rooms, meta)
	}
	return rooms, nil
}
