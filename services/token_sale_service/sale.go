package token_sale_service

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zsmartex/tradedesk/controllers/entities"
	"github.com/zsmartex/tradedesk/models"
)

const tokenPrecision = 8

var (
	ErrAllocationsSum = errors.New("token_sale.allocations_must_sum_to_100")
	ErrNoPrice        = errors.New("token_sale.invalid_price")
)

type Phase = string

var (
	PhaseUpcoming Phase = "upcoming"
	PhaseActive   Phase = "active"
	PhaseEnded    Phase = "ended"
)

type Countdown struct {
	Phase   Phase
	Target  time.Time
	Days    int64
	Hours   int64
	Minutes int64
	Seconds int64
}

// CountdownFor splits the time left until the next sale boundary: the start
// while upcoming, the end while active. An ended sale has no remaining time.
func CountdownFor(sale *models.TokenSale, now time.Time) Countdown {
	var c Countdown

	switch {
	case now.Before(sale.StartTime):
		c.Phase, c.Target = PhaseUpcoming, sale.StartTime
	case sale.IsEnded(now):
		return Countdown{Phase: PhaseEnded}
	default:
		c.Phase, c.Target = PhaseActive, sale.EndTime
	}

	left := int64(c.Target.Sub(now) / time.Second)
	c.Days = left / 86400
	c.Hours = left % 86400 / 3600
	c.Minutes = left % 3600 / 60
	c.Seconds = left % 60

	return c
}

func (c Countdown) ToJSON() entities.CountdownEntity {
	e := entities.CountdownEntity{
		Phase:   c.Phase,
		Days:    c.Days,
		Hours:   c.Hours,
		Minutes: c.Minutes,
		Seconds: c.Seconds,
	}
	if !c.Target.IsZero() {
		e.Target = c.Target.Unix()
	}

	return e
}

type Allocation struct {
	Category string
	Percent  decimal.Decimal
	Tokens   decimal.Decimal
}

func (a Allocation) ToJSON() entities.AllocationEntity {
	return entities.AllocationEntity{
		Category: a.Category,
		Percent:  a.Percent,
		Tokens:   a.Tokens,
	}
}

// Tokenomics expands the sale's allocation percentages into token amounts of
// the total supply.
func Tokenomics(sale *models.TokenSale) ([]Allocation, error) {
	hundred := decimal.NewFromInt(100)
	total := decimal.Zero
	out := make([]Allocation, 0, len(sale.Allocations))

	for _, a := range sale.Allocations {
		total = total.Add(a.Percent)
		out = append(out, Allocation{
			Category: a.Category,
			Percent:  a.Percent,
			Tokens:   sale.TotalSupply.Mul(a.Percent).Div(hundred),
		})
	}

	if !total.Equal(hundred) {
		return nil, ErrAllocationsSum
	}

	return out, nil
}

// TokensFor converts a contribution in the quote currency into tokens.
func TokensFor(sale *models.TokenSale, contribution decimal.Decimal) (decimal.Decimal, error) {
	if !sale.Price.IsPositive() {
		return decimal.Zero, ErrNoPrice
	}

	return contribution.DivRound(sale.Price, tokenPrecision), nil
}
