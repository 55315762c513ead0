package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventStartsAt(t *testing.T) {
	e := &Event{EventDate: "2025-07-04", EventTime: "18:30"}

	at, err := e.StartsAt()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 7, 4, 18, 30, 0, 0, time.UTC), at)
}

func TestEventStartsAt_Invalid(t *testing.T) {
	e := &Event{EventDate: "04/07/2025", EventTime: "18:30"}

	_, err := e.StartsAt()
	assert.Error(t, err)
}

func TestPaymentRecordAmount(t *testing.T) {
	rec := &PaymentRecord{AmountCents: 2000}
	assert.True(t, decimal.NewFromInt(20).Equal(rec.Amount()))

	rec = &PaymentRecord{AmountCents: 1999}
	assert.True(t, decimal.RequireFromString("19.99").Equal(rec.Amount()))
}
