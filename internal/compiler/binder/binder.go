// Package binder links normalized room shapes to narrative room metadata.
package binder

import (
	"strings"

	"scene-compiler/internal/compiler/models"
)

// Unbound marks a shape that received no metadata entry.
const Unbound = -1

// ============================================================
// Room Binder
// ============================================================

// Bind returns, for every shape, the index of its metadata entry in rooms
// or Unbound. Explicit id matches (exact string) are settled first; the
// remaining shapes then take the unconsumed entries in order.
func Bind(shapes []models.ShapeRecord, rooms []models.RoomMeta) []int {
	result := make([]int, len(shapes))
	consumed := make([]bool, len(rooms))

	byID := make(map[string][]int, len(rooms))
	for i, room := range rooms {
		if room.ID != "" {
			byID[room.ID] = append(byID[room.ID], i)
		}
	}

	for i, shape := range shapes {
		result[i] = Unbound
		if shape.ID == "" {
			continue
		}
		queue := byID[shape.ID]
		if len(queue) == 0 {
			continue
		}
		result[i] = queue[0]
		consumed[queue[0]] = true
		byID[shape.ID] = queue[1:]
	}

	next := 0
	for i := range shapes {
		if result[i] != Unbound {
			continue
		}
		for next < len(rooms) && consumed[next] {
			next++
		}
		if next == len(rooms) {
			break
		}
		result[i] = next
		consumed[next] = true
	}

	return result
}

// Content builds the narrative payload for one bound room.
func Content(shape models.ShapeRecord, room models.RoomMeta) models.RoomContent {
	return models.RoomContent{
		EntryID:       room.ID,
		ShapeID:       shape.ID,
		Name:          room.Name,
		Purpose:       room.Purpose,
		Size:          room.Size,
		ReadAloud:     room.ReadAloud,
		Atmosphere:    room.Atmosphere,
		Features:      room.Features,
		Hazards:       room.Hazards,
		Interactables: room.Interactables,
		Outdoor:       shape.Outdoor,
		Body:          journalBody(room),
	}
}

// Label is the note caption, falling back to the entry id.
func Label(room models.RoomMeta) string {
	if room.Name != "" {
		return room.Name
	}
	return room.ID
}

func journalBody(room models.RoomMeta) string {
	var b strings.Builder

	b.WriteString(Label(room))
	var detail []string
	if room.Purpose != "" {
		detail = append(detail, room.Purpose)
	}
	if room.Size != "" {
		detail = append(detail, room.Size)
	}
	if len(detail) > 0 {
		b.WriteString(" (" + strings.Join(detail, ", ") + ")")
	}
	b.WriteString("\n")

	if room.ReadAloud != "" {
		b.WriteString("\n" + room.ReadAloud + "\n")
	}
	if room.Atmosphere != "" {
		b.WriteString("\nAtmosphere: " + room.Atmosphere + "\n")
	}
	writeList(&b, "Features", room.Features)
	writeList(&b, "Hazards", room.Hazards)
	writeList(&b, "Interactables", room.Interactables)

	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n" + title + ":\n")
	for _, item := range items {
		b.WriteString("- " + item + "\n")
	}
}
