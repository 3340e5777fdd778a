package dungeon

import (
	"strings"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
)

var roomGlyphs = map[entities.RoomType]byte{
	entities.RoomTypeStart:       'S',
	entities.RoomTypeBoss:        'B',
	entities.RoomTypePrepareBoss: 'P',
	entities.RoomTypeMonster:     'M',
	entities.RoomTypeFireCamp:    'F',
	entities.RoomTypeTreasure:    'T',
	entities.RoomTypeItem:        'I',
}

// Render draws the dungeon as text with the highest row first. Rooms are
// single letters, '-' and '|' are doors and '.' is empty grid.
func Render(d *entities.Dungeon) string {
	if d == nil || d.Len() == 0 {
		return ""
	}

	positions := d.Positions()
	minX, maxX := positions[0].X, positions[0].X
	minY, maxY := positions[0].Y, positions[0].Y
	for _, p := range positions[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	var sb strings.Builder
	for y := maxY; y >= minY; y-- {
		var cells, links strings.Builder
		for x := minX; x <= maxX; x++ {
			pos := entities.GridPosition{X: x, Y: y}
			room, ok := d.Room(pos)
			if !ok {
				cells.WriteByte('.')
			} else {
				cells.WriteByte(roomGlyphs[room.Type])
			}

			if x < maxX {
				if ok && room.Doors.Right {
					cells.WriteByte('-')
				} else {
					cells.WriteByte(' ')
				}
			}

			if y > minY {
				if ok && room.Doors.Down {
					links.WriteByte('|')
				} else {
					links.WriteByte(' ')
				}
				if x < maxX {
					links.WriteByte(' ')
				}
			}
		}

		sb.WriteString(cells.String())
		sb.WriteByte('\n')
		if y > minY {
			sb.WriteString(strings.TrimRight(links.String(), " "))
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
