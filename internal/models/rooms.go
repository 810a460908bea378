package models

import (
	"context"
	"time"
)

const (
	RoomDbName  = "meetspace"
	RoomColName = "rooms"
)

type Room struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name" validate:"required"`
	Capacity  int       `bson:"capacity" json:"capacity,omitempty"`
	Location  string    `bson:"location" json:"location,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

type RoomRepo interface {
	GetRoomByID(ctx context.Context, id string) (*Room, error)
	ListRooms(ctx context.Context) ([]Room, error)
	SeedRooms(ctx context.Context, rooms []Room) error
}

// DefaultRooms is the catalog seeded at startup. Room management has no API;
// the catalog changes here.
func DefaultRooms() []Room {
	return []Room{
		{ID: "boardroom-a", Name: "Boardroom A", Capacity: 8, Location: "2nd floor"},
		{ID: "boardroom-b", Name: "Boardroom B", Capacity: 12, Location: "2nd floor"},
		{ID: "focus-1", Name: "Focus Pod 1", Capacity: 2, Location: "3rd floor"},
		{ID: "focus-2", Name: "Focus Pod 2", Capacity: 2, Location: "3rd floor"},
		{ID: "townhall", Name: "Town Hall", Capacity: 60, Location: "1st floor"},
	}
}
