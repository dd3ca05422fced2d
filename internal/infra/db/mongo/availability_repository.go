package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hotelstay/internal/app/uow"
	domainavailability "hotelstay/internal/domain/availability"
	domainhotels "hotelstay/internal/domain/hotels"
)

// AvailabilityRepository stores one calendar document per room.
type AvailabilityRepository struct {
	col *mongo.Collection
}

func NewAvailabilityRepository(db *mongo.Database) *AvailabilityRepository {
	return &AvailabilityRepository{col: db.Collection("agg_calendar")}
}

func (r *AvailabilityRepository) Calendar(ctx context.Context, key domainavailability.RoomKey) (*domainavailability.Calendar, error) {
	var doc calendarDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": key.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainavailability.ErrCalendarNotFound
		}
		return nil, err
	}
	return doc.toAggregate()
}

func (r *AvailabilityRepository) Save(ctx context.Context, cal *domainavailability.Calendar) error {
	doc := newCalendarDocument(cal)
	filter := bson.M{"_id": doc.ID, "version": cal.Version}
	doc.Version = cal.Version + 1
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": doc}, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return uow.ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return uow.ErrConcurrentUpdate
	}
	cal.Version = doc.Version
	return nil
}

type blockDocument struct {
	Range     rangeDocument `bson:"range"`
	Reason    string        `bson:"reason"`
	Reference string        `bson:"reference"`
	CreatedAt int64         `bson:"created_at"`
}

type calendarDocument struct {
	ID      string          `bson:"_id"`
	HotelID string          `bson:"hotel_id"`
	RoomID  string          `bson:"room_id"`
	Blocks  []blockDocument `bson:"blocks"`
	Version int64           `bson:"version"`
}

func newCalendarDocument(cal *domainavailability.Calendar) calendarDocument {
	blocks := make([]blockDocument, 0, len(cal.Blocks))
	for _, b := range cal.Blocks {
		blocks = append(blocks, blockDocument{
			Range:     toRangeDocument(b.Range),
			Reason:    string(b.Reason),
			Reference: b.Reference,
			CreatedAt: b.CreatedAt.UnixMilli(),
		})
	}
	return calendarDocument{
		ID:      cal.Room.String(),
		HotelID: string(cal.Room.HotelID),
		RoomID:  string(cal.Room.RoomID),
		Blocks:  blocks,
		Version: cal.Version,
	}
}

func (d calendarDocument) toAggregate() (*domainavailability.Calendar, error) {
	cal := domainavailability.NewCalendar(domainavailability.RoomKey{
		HotelID: domainhotels.HotelID(d.HotelID),
		RoomID:  domainhotels.RoomID(d.RoomID),
	})
	cal.Version = d.Version
	for _, bd := range d.Blocks {
		dr, err := bd.Range.toRange()
		if err != nil {
			return nil, err
		}
		cal.Blocks = append(cal.Blocks, domainavailability.Block{
			Range:     dr,
			Reason:    domainavailability.BlockReason(bd.Reason),
			Reference: bd.Reference,
			CreatedAt: timestampToTime(bd.CreatedAt),
		})
	}
	return cal, nil
}
