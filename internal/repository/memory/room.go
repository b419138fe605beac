package memory

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/skolar/timetable-api/internal/models"
)

// RoomStore manages rooms in memory.
type RoomStore struct {
	st *state
}

// List returns all rooms ordered by building and name.
func (s *RoomStore) List(ctx context.Context) ([]models.Room, error) {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()

	rooms := make([]models.Room, 0, len(s.st.rooms))
	for _, r := range s.st.rooms {
		rooms = append(rooms, r)
	}
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].Building != rooms[j].Building {
			return rooms[i].Building < rooms[j].Building
		}
		return rooms[i].Name < rooms[j].Name
	})
	return rooms, nil
}

// FindByID loads a room by id.
func (s *RoomStore) FindByID(ctx context.Context, id string) (*models.Room, error) {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()

	r, ok := s.st.rooms[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &r, nil
}

// Create inserts a room, assigning the id when empty.
func (s *RoomStore) Create(ctx context.Context, room *models.Room) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	if room.CreatedAt.IsZero() {
		room.CreatedAt = time.Now().UTC()
	}
	s.st.rooms[room.ID] = *room
	return nil
}

// Update rewrites a room.
func (s *RoomStore) Update(ctx context.Context, room *models.Room) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	if existing, ok := s.st.rooms[room.ID]; ok {
		room.CreatedAt = existing.CreatedAt
		s.st.rooms[room.ID] = *room
	}
	return nil
}

// Delete removes a room.
func (s *RoomStore) Delete(ctx context.Context, id string) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	delete(s.st.rooms, id)
	return nil
}
