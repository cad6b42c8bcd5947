package bookings_test

import (
	"context"
	"errors"
	"testing"

	"conferly/internal/bookings"
	"conferly/internal/shared/apperrors"
	"conferly/internal/shared/config"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&bookings.Booking{},
		&bookings.Delegate{},
		&bookings.Sponsorship{},
		&bookings.Speaker{},
	))

	return db
}

func newBookingService(t *testing.T) (bookings.Service, bookings.Repository) {
	t.Helper()

	db := setupTestDB(t)
	repo := bookings.NewRepository(db)
	pricing := bookings.NewPricingEngine(config.PricingConfig{BaseCurrency: "USD", USDToINRRate: 83})
	return bookings.NewService(repo, pricing, nil), repo
}

func passRequest(delegates int) bookings.CreateBookingRequest {
	req := bookings.CreateBookingRequest{
		Type:     "pass",
		Subtotal: 300,
		Tax:      30,
	}
	passTypes := []string{"VIP", "General", "General"}
	for i := 0; i < delegates; i++ {
		req.Delegates = append(req.Delegates, bookings.DelegateRequest{
			FirstName: "Dana",
			LastName:  "Ives",
			Company:   "Acme",
			Email:     "dana@example.com",
			Mobile:    "+15550001",
			PassType:  passTypes[i%len(passTypes)],
		})
	}
	return req
}

func TestCreateBooking_PassAppliesGroupDiscount(t *testing.T) {
	svc, _ := newBookingService(t)

	booking, err := svc.CreateBooking(context.Background(), passRequest(3))
	require.NoError(t, err)

	assert.Equal(t, bookings.StatusPending, booking.Status)
	assert.False(t, booking.Paid)
	assert.Equal(t, 300.0, booking.Subtotal)
	assert.Equal(t, 45.0, booking.Discount)
	assert.Equal(t, 30.0, booking.Tax)
	assert.Equal(t, 285.0, booking.Total)
	assert.Equal(t, "USD", booking.Currency)
	assert.Len(t, booking.Delegates, 3)
}

func TestCreateBooking_PassRequiresDelegates(t *testing.T) {
	svc, _ := newBookingService(t)

	req := passRequest(0)
	booking, err := svc.CreateBooking(context.Background(), req)

	assert.Nil(t, booking)
	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateBooking_InvalidType(t *testing.T) {
	svc, _ := newBookingService(t)

	_, err := svc.CreateBooking(context.Background(), bookings.CreateBookingRequest{Type: "table"})

	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateBooking_SponsorshipValidatesFields(t *testing.T) {
	svc, _ := newBookingService(t)

	req := bookings.CreateBookingRequest{
		Type:  "sponsorship",
		Total: 10000,
		Sponsorship: &bookings.SponsorshipRequest{
			FirstName: "Robin",
			LastName:  "Sage",
			Email:     "robin@example.com",
			// Package missing
		},
	}

	_, err := svc.CreateBooking(context.Background(), req)
	require.Error(t, err)

	var validationErr *apperrors.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "sponsorship.package", validationErr.Field)
}

func TestCreateBooking_SponsorshipUsesFlatTotal(t *testing.T) {
	svc, _ := newBookingService(t)

	req := bookings.CreateBookingRequest{
		Type:  "sponsorship",
		Total: 10000,
		Sponsorship: &bookings.SponsorshipRequest{
			FirstName: "Robin",
			LastName:  "Sage",
			Company:   "Globex",
			Email:     "robin@example.com",
			Package:   "Gold",
		},
	}

	booking, err := svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 10000.0, booking.Total)
	assert.Equal(t, 0.0, booking.Discount)
	require.NotNil(t, booking.Sponsorship)
	assert.Equal(t, "Gold", booking.Sponsorship.Package)
}

func TestCreateBooking_SpeakerPassDefaultsPackage(t *testing.T) {
	svc, _ := newBookingService(t)

	req := bookings.CreateBookingRequest{
		Type:  "speakerpass",
		Total: 150,
		Speakerpass: []bookings.SpeakerPassRequest{
			{FirstName: "Kai", LastName: "Lund", Email: "kai@example.com", Topic: "Edge caching"},
		},
	}

	booking, err := svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, booking.Speakers, 1)
	assert.Equal(t, "Speaker Pass", booking.Speakers[0].Package)
}

func TestGetBooking_NotFound(t *testing.T) {
	svc, _ := newBookingService(t)

	_, err := svc.GetBooking(context.Background(), uuid.New())

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetBooking_PreloadsParticipants(t *testing.T) {
	svc, _ := newBookingService(t)

	created, err := svc.CreateBooking(context.Background(), passRequest(2))
	require.NoError(t, err)

	fetched, err := svc.GetBooking(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.ID, fetched.ID)
	assert.Len(t, fetched.Delegates, 2)
}

func TestListBookings_FiltersByStatusAndType(t *testing.T) {
	svc, _ := newBookingService(t)

	_, err := svc.CreateBooking(context.Background(), passRequest(1))
	require.NoError(t, err)
	_, err = svc.CreateBooking(context.Background(), passRequest(2))
	require.NoError(t, err)

	result, err := svc.ListBookings(context.Background(), bookings.BookingListQuery{
		Status: "PENDING",
		Type:   "pass",
		Page:   1,
		Limit:  10,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.TotalCount)
	assert.Len(t, result.Bookings, 2)
	assert.Equal(t, 1, result.TotalPages)

	empty, err := svc.ListBookings(context.Background(), bookings.BookingListQuery{Status: "CONFIRMED"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.TotalCount)
}
