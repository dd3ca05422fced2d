package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainhotels "hotelstay/internal/domain/hotels"
)

type HotelRepository struct {
	col *mongo.Collection
}

func NewHotelRepository(db *mongo.Database) *HotelRepository {
	col := db.Collection("agg_hotel")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return &HotelRepository{col: col}
}

func (r *HotelRepository) ByID(ctx context.Context, id domainhotels.HotelID) (*domainhotels.Hotel, error) {
	return r.findOne(ctx, bson.M{"_id": string(id)})
}

func (r *HotelRepository) BySlug(ctx context.Context, slug string) (*domainhotels.Hotel, error) {
	return r.findOne(ctx, bson.M{"slug": strings.ToLower(slug)})
}

func (r *HotelRepository) findOne(ctx context.Context, filter bson.M) (*domainhotels.Hotel, error) {
	var doc hotelDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainhotels.ErrHotelNotFound
		}
		return nil, err
	}
	return doc.toAggregate()
}

func (r *HotelRepository) List(ctx context.Context) ([]*domainhotels.Hotel, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*domainhotels.Hotel
	for cur.Next(ctx) {
		var doc hotelDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		h, err := doc.toAggregate()
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, cur.Err()
}

func (r *HotelRepository) Save(ctx context.Context, hotel *domainhotels.Hotel) error {
	if err := hotel.Validate(); err != nil {
		return err
	}
	doc := newHotelDocument(hotel)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	return err
}

type roomDocument struct {
	ID           string               `bson:"id"`
	Name         string               `bson:"name"`
	Description  string               `bson:"description"`
	MaxOccupancy int                  `bson:"max_occupancy"`
	BasePrice    primitive.Decimal128 `bson:"base_price"`
	BedType      string               `bson:"bed_type"`
	HasAC        bool                 `bson:"has_ac"`
	HasWiFi      bool                 `bson:"has_wifi"`
	HasTV        bool                 `bson:"has_tv"`
}

type hotelDocument struct {
	ID               string               `bson:"_id"`
	Slug             string               `bson:"slug"`
	Name             string               `bson:"name"`
	ShortDescription string               `bson:"short_description"`
	Description      string               `bson:"description"`
	Address          string               `bson:"address"`
	Area             string               `bson:"area"`
	Phone            string               `bson:"phone"`
	Email            string               `bson:"email"`
	StartingPrice    primitive.Decimal128 `bson:"starting_price"`
	AverageRating    float64              `bson:"average_rating"`
	TotalReviews     int                  `bson:"total_reviews"`
	Featured         bool                 `bson:"is_featured"`
	Status           string               `bson:"status"`
	Amenities        []string             `bson:"amenities"`
	Rooms            []roomDocument       `bson:"rooms"`
	CreatedAt        int64                `bson:"created_at"`
}

func newHotelDocument(h *domainhotels.Hotel) hotelDocument {
	rooms := make([]roomDocument, 0, len(h.Rooms))
	for _, room := range h.Rooms {
		rooms = append(rooms, roomDocument{
			ID:           string(room.ID),
			Name:         room.Name,
			Description:  room.Description,
			MaxOccupancy: room.MaxOccupancy,
			BasePrice:    toDecimal128(room.BasePrice),
			BedType:      room.BedType,
			HasAC:        room.HasAC,
			HasWiFi:      room.HasWiFi,
			HasTV:        room.HasTV,
		})
	}
	return hotelDocument{
		ID:               string(h.ID),
		Slug:             strings.ToLower(h.Slug),
		Name:             h.Name,
		ShortDescription: h.ShortDescription,
		Description:      h.Description,
		Address:          h.Address,
		Area:             h.Area,
		Phone:            h.Phone,
		Email:            h.Email,
		StartingPrice:    toDecimal128(h.StartingPrice),
		AverageRating:    h.AverageRating,
		TotalReviews:     h.TotalReviews,
		Featured:         h.Featured,
		Status:           string(h.Status),
		Amenities:        append([]string{}, h.Amenities...),
		Rooms:            rooms,
		CreatedAt:        h.CreatedAt.UnixMilli(),
	}
}

func (d hotelDocument) toAggregate() (*domainhotels.Hotel, error) {
	starting, err := fromDecimal128(d.StartingPrice)
	if err != nil {
		return nil, err
	}
	h := &domainhotels.Hotel{
		ID:               domainhotels.HotelID(d.ID),
		Slug:             d.Slug,
		Name:             d.Name,
		ShortDescription: d.ShortDescription,
		Description:      d.Description,
		Address:          d.Address,
		Area:             d.Area,
		Phone:            d.Phone,
		Email:            d.Email,
		StartingPrice:    starting,
		AverageRating:    d.AverageRating,
		TotalReviews:     d.TotalReviews,
		Featured:         d.Featured,
		Status:           domainhotels.Status(d.Status),
		Amenities:        append([]string(nil), d.Amenities...),
		CreatedAt:        time.UnixMilli(d.CreatedAt).UTC(),
	}
	for _, rd := range d.Rooms {
		price, err := fromDecimal128(rd.BasePrice)
		if err != nil {
			return nil, err
		}
		h.Rooms = append(h.Rooms, domainhotels.Room{
			ID:           domainhotels.RoomID(rd.ID),
			Name:         rd.Name,
			Description:  rd.Description,
			MaxOccupancy: rd.MaxOccupancy,
			BasePrice:    price,
			BedType:      rd.BedType,
			HasAC:        rd.HasAC,
			HasWiFi:      rd.HasWiFi,
			HasTV:        rd.HasTV,
		})
	}
	return h, nil
}
