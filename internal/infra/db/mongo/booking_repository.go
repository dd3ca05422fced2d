package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hotelstay/internal/app/uow"
	domainbooking "hotelstay/internal/domain/booking"
	domainhotels "hotelstay/internal/domain/hotels"
	"hotelstay/internal/domain/stay"
)

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	col := db.Collection("agg_booking")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{Keys: bson.D{{Key: "guest.email", Value: 1}, {Key: "created_at", Value: -1}}})
	return &BookingRepository{col: col}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrBookingNotFound
		}
		return nil, err
	}
	return doc.toAggregate()
}

func (r *BookingRepository) ListByEmail(ctx context.Context, email string) ([]*domainbooking.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"guest.email": domainbooking.NormalizeEmail(email)}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*domainbooking.Booking{}
	for cur.Next(ctx) {
		var doc bookingDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		b, err := doc.toAggregate()
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, cur.Err()
}

// Save upserts the booking guarded by its version.
func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	doc := newBookingDocument(b)
	filter := bson.M{"_id": doc.ID, "version": b.Version}
	doc.Version = b.Version + 1
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
	b.Version = doc.Version
	return nil
}

type guestDocument struct {
	Name  string `bson:"name"`
	Email string `bson:"email"`
	Phone string `bson:"phone"`
}

type quoteDocument struct {
	Nights          int                  `bson:"nights"`
	Guests          int                  `bson:"guests"`
	NightlyRate     moneyDocument        `bson:"nightly_rate"`
	GuestPolicy     string               `bson:"guest_policy"`
	GuestMultiplier primitive.Decimal128 `bson:"guest_multiplier"`
	BaseAmount      moneyDocument        `bson:"base_amount"`
	ServiceFee      moneyDocument        `bson:"service_fee"`
	TaxRatePercent  primitive.Decimal128 `bson:"tax_rate_percent"`
	TaxAmount       moneyDocument        `bson:"tax_amount"`
	TotalAmount     moneyDocument        `bson:"total_amount"`
}

type bookingDocument struct {
	ID              string        `bson:"_id"`
	HotelID         string        `bson:"hotel_id"`
	RoomID          string        `bson:"room_id"`
	Guest           guestDocument `bson:"guest"`
	Range           rangeDocument `bson:"range"`
	Guests          int           `bson:"guests"`
	SpecialRequests string        `bson:"special_requests"`
	Quote           quoteDocument `bson:"quote"`
	State           string        `bson:"state"`
	CancelReason    string        `bson:"cancel_reason"`
	CreatedAt       int64         `bson:"created_at"`
	UpdatedAt       int64         `bson:"updated_at"`
	Version         int64         `bson:"version"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	q := b.Quote
	return bookingDocument{
		ID:      string(b.ID),
		HotelID: string(b.HotelID),
		RoomID:  string(b.RoomID),
		Guest: guestDocument{
			Name:  b.Guest.Name,
			Email: domainbooking.NormalizeEmail(b.Guest.Email),
			Phone: b.Guest.Phone,
		},
		Range:           toRangeDocument(b.Range),
		Guests:          b.Guests,
		SpecialRequests: b.SpecialRequests,
		Quote: quoteDocument{
			Nights:          q.Nights,
			Guests:          q.Guests,
			NightlyRate:     toMoneyDocument(q.NightlyRate),
			GuestPolicy:     q.GuestPolicy,
			GuestMultiplier: toDecimal128(q.GuestMultiplier),
			BaseAmount:      toMoneyDocument(q.BaseAmount),
			ServiceFee:      toMoneyDocument(q.ServiceFee),
			TaxRatePercent:  toDecimal128(q.TaxRatePercent),
			TaxAmount:       toMoneyDocument(q.TaxAmount),
			TotalAmount:     toMoneyDocument(q.TotalAmount),
		},
		State:        string(b.State),
		CancelReason: b.CancelReason,
		CreatedAt:    b.CreatedAt.UnixMilli(),
		UpdatedAt:    b.UpdatedAt.UnixMilli(),
		Version:      b.Version,
	}
}

func (d bookingDocument) toAggregate() (*domainbooking.Booking, error) {
	dr, err := d.Range.toRange()
	if err != nil {
		return nil, err
	}
	quote, err := d.Quote.toQuote()
	if err != nil {
		return nil, err
	}
	quote.CheckIn = dr.CheckIn
	quote.CheckOut = dr.CheckOut
	return &domainbooking.Booking{
		ID:              domainbooking.BookingID(d.ID),
		HotelID:         domainhotels.HotelID(d.HotelID),
		RoomID:          domainhotels.RoomID(d.RoomID),
		Guest:           domainbooking.Guest{Name: d.Guest.Name, Email: d.Guest.Email, Phone: d.Guest.Phone},
		Range:           dr,
		Guests:          d.Guests,
		SpecialRequests: d.SpecialRequests,
		Quote:           quote,
		State:           domainbooking.BookingState(d.State),
		CancelReason:    d.CancelReason,
		CreatedAt:       timestampToTime(d.CreatedAt),
		UpdatedAt:       timestampToTime(d.UpdatedAt),
		Version:         d.Version,
	}, nil
}

func (d quoteDocument) toQuote() (stay.Quote, error) {
	q := stay.Quote{Nights: d.Nights, Guests: d.Guests, GuestPolicy: d.GuestPolicy}
	var err error
	if q.NightlyRate, err = d.NightlyRate.toMoney(); err != nil {
		return stay.Quote{}, err
	}
	if q.BaseAmount, err = d.BaseAmount.toMoney(); err != nil {
		return stay.Quote{}, err
	}
	if q.ServiceFee, err = d.ServiceFee.toMoney(); err != nil {
		return stay.Quote{}, err
	}
	if q.TaxAmount, err = d.TaxAmount.toMoney(); err != nil {
		return stay.Quote{}, err
	}
	if q.TotalAmount, err = d.TotalAmount.toMoney(); err != nil {
		return stay.Quote{}, err
	}
	if q.GuestMultiplier, err = fromDecimal128(d.GuestMultiplier); err != nil {
		return stay.Quote{}, err
	}
	if q.TaxRatePercent, err = fromDecimal128(d.TaxRatePercent); err != nil {
		return stay.Quote{}, err
	}
	return q, nil
}
