package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (b *Booking) BeforeCreate() error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = BookingPending
	}
	return nil
}

func (mdb *MongodbRepo) InsertBooking(ctx context.Context, booking *Booking) (*Booking, error) {
	if err := booking.BeforeCreate(); err != nil {
		return nil, fmt.Errorf("error preparing booking: %v", err)
	}
	col, err := mdb.GetCollection(ctx, BookingDbName, BookingColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := col.InsertOne(ctx, booking); err != nil {
		return nil, fmt.Errorf("error inserting booking: %v", err)
	}
	return booking, nil
}

func (mdb *MongodbRepo) GetBookingByID(ctx context.Context, id string) (*Booking, error) {
	col, err := mdb.GetCollection(ctx, BookingDbName, BookingColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var booking Booking
	if err := col.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("error finding booking: %v", err)
	}
	return &booking, nil
}

// FindActiveByRoomAndDate returns every pending or confirmed booking for the
// room on the given day. Cancelled rows are excluded so a freed slot can be
// rebooked.
func (mdb *MongodbRepo) FindActiveByRoomAndDate(ctx context.Context, roomID, date string) ([]Booking, error) {
	col, err := mdb.GetCollection(ctx, BookingDbName, BookingColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{
		"room_id": roomID,
		"date":    date,
		"status":  bson.M{"$in": []BookingStatus{BookingPending, BookingConfirmed}},
	}
	cursor, err := col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error finding bookings: %v", err)
	}
	defer cursor.Close(ctx)

	var bookings []Booking
	for cursor.Next(ctx) {
		var b Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("error decoding booking: %v", err)
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return bookings, nil
}

// UpdateBookingStatus moves a booking to a new status. The lifecycle is
// one-directional: a cancelled booking never leaves that state, enforced in
// the update filter so concurrent transitions cannot revive it.
func (mdb *MongodbRepo) UpdateBookingStatus(ctx context.Context, id string, to BookingStatus) (*Booking, error) {
	col, err := mdb.GetCollection(ctx, BookingDbName, BookingColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{"id": id, "status": bson.M{"$ne": BookingCancelled}}
	update := bson.M{"$set": bson.M{"status": to, "updated_at": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Booking
	err = col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("error updating booking status: %v", err)
	}

	// No match means either the booking is absent or already cancelled.
	if _, lookupErr := mdb.GetBookingByID(ctx, id); lookupErr != nil {
		return nil, lookupErr
	}
	return nil, ErrBookingFinalized
}

// query translates the filter into its Mongo form. Zero-valued fields are
// left out so they match everything.
func (f BookingFilter) query() bson.M {
	query := bson.M{}
	if f.RoomID != "" {
		query["room_id"] = f.RoomID
	}
	if f.Date != "" {
		query["date"] = f.Date
	}
	if f.Status != "" {
		query["status"] = f.Status
	}
	if f.RequestedBy != "" {
		query["requested_by"] = f.RequestedBy
	}
	return query
}

func (mdb *MongodbRepo) ListBookings(ctx context.Context, filter BookingFilter) ([]Booking, int64, error) {
	col, err := mdb.GetCollection(ctx, BookingDbName, BookingColName)
	if err != nil {
		return nil, 0, fmt.Errorf("error getting collection: %v", err)
	}

	query := filter.query()
	total, err := col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting bookings: %v", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}
	if filter.Offset > 0 {
		opts.SetSkip(filter.Offset)
	}

	cursor, err := col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing bookings: %v", err)
	}
	defer cursor.Close(ctx)

	var bookings []Booking
	for cursor.Next(ctx) {
		var b Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, 0, fmt.Errorf("error decoding booking: %v", err)
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("cursor error: %v", err)
	}
	return bookings, total, nil
}

// EnsureBookingIndexes creates the unique booking id index and the compound
// index behind the active-bookings query. Safe to call on every startup.
func (mdb *MongodbRepo) EnsureBookingIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(ctx, BookingDbName, BookingColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "room_id", Value: 1},
				{Key: "date", Value: 1},
				{Key: "status", Value: 1},
			},
		},
	}
	if _, err := col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("error creating booking indexes: %v", err)
	}
	return nil
}
