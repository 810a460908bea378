package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (mdb *MongodbRepo) GetRoomByID(ctx context.Context, id string) (*Room, error) {
	col, err := mdb.GetCollection(ctx, RoomDbName, RoomColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var room Room
	if err := col.FindOne(ctx, bson.M{"id": id}).Decode(&room); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("error finding room: %v", err)
	}
	return &room, nil
}

func (mdb *MongodbRepo) ListRooms(ctx context.Context) ([]Room, error) {
	col, err := mdb.GetCollection(ctx, RoomDbName, RoomColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing rooms: %v", err)
	}
	defer cursor.Close(ctx)

	var rooms []Room
	for cursor.Next(ctx) {
		var r Room
		if err := cursor.Decode(&r); err != nil {
			return nil, fmt.Errorf("error decoding room: %v", err)
		}
		rooms = append(rooms, r)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return rooms, nil
}

// SeedRooms upserts the given rooms by id. Existing rooms keep their data, so
// repeated startups never duplicate or clobber them.
func (mdb *MongodbRepo) SeedRooms(ctx context.Context, rooms []Room) error {
	col, err := mdb.GetCollection(ctx, RoomDbName, RoomColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	for _, room := range rooms {
		filter := bson.M{"id": room.ID}
		update := bson.M{
			"$setOnInsert": bson.M{
				"id":         room.ID,
				"name":       room.Name,
				"capacity":   room.Capacity,
				"location":   room.Location,
				"created_at": time.Now(),
			},
		}
		opts := options.Update().SetUpsert(true)
		if _, err := col.UpdateOne(ctx, filter, update, opts); err != nil {
			return fmt.Errorf("error seeding room %s: %v", room.ID, err)
		}
	}
	return nil
}
