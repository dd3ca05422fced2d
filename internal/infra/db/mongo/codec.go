package mongo

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hotelstay/internal/domain/shared/daterange"
	"hotelstay/internal/domain/shared/money"
)

// Amounts are stored as Decimal128 so aggregation stays exact.
func toDecimal128(d decimal.Decimal) primitive.Decimal128 {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		// prices stay well within 34 significant digits
		panic(fmt.Sprintf("mongo: decimal %s out of range: %v", d, err))
	}
	return v
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	return decimal.NewFromString(v.String())
}

type moneyDocument struct {
	Amount   primitive.Decimal128 `bson:"amount"`
	Currency string               `bson:"currency"`
}

func toMoneyDocument(m money.Money) moneyDocument {
	return moneyDocument{Amount: toDecimal128(m.Amount), Currency: m.Currency}
}

func (d moneyDocument) toMoney() (money.Money, error) {
	amount, err := fromDecimal128(d.Amount)
	if err != nil {
		return money.Money{}, err
	}
	return money.Money{Amount: amount, Currency: d.Currency}, nil
}

// Calendar days are stored as YYYY-MM-DD strings; they sort lexically.
type rangeDocument struct {
	CheckIn  string `bson:"check_in"`
	CheckOut string `bson:"check_out"`
}

func toRangeDocument(r daterange.DateRange) rangeDocument {
	return rangeDocument{
		CheckIn:  r.CheckIn.Format(daterange.DateLayout),
		CheckOut: r.CheckOut.Format(daterange.DateLayout),
	}
}

func (d rangeDocument) toRange() (daterange.DateRange, error) {
	in, err := daterange.ParseDate(d.CheckIn)
	if err != nil {
		return daterange.DateRange{}, err
	}
	out, err := daterange.ParseDate(d.CheckOut)
	if err != nil {
		return daterange.DateRange{}, err
	}
	return daterange.New(in, out)
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
