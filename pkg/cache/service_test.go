package cache_test

import (
	"context"
	"testing"
	"time"

	"conferly/pkg/cache"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedBooking struct {
	ID    string  `json:"id"`
	Total float64 `json:"total"`
}

func TestGet_MissReturnsErrCacheMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := cache.NewService(client)

	key := cache.BookingKey("missing")
	mock.ExpectGet(key).RedisNil()

	var dest cachedBooking
	err := svc.Get(context.Background(), key, &dest)

	assert.ErrorIs(t, err, cache.ErrCacheMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetThenGet_RoundTrips(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := cache.NewService(client)

	key := cache.BookingKey("b-1")
	value := cachedBooking{ID: "b-1", Total: 285}
	payload := `{"id":"b-1","total":285}`

	mock.ExpectSet(key, []byte(payload), 5*time.Minute).SetVal("OK")
	require.NoError(t, svc.Set(context.Background(), key, value, 5*time.Minute))

	mock.ExpectGet(key).SetVal(payload)

	var dest cachedBooking
	require.NoError(t, svc.Get(context.Background(), key, &dest))
	assert.Equal(t, value, dest)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_RemovesKey(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := cache.NewService(client)

	key := cache.BookingKey("b-1")
	mock.ExpectDel(key).SetVal(1)

	assert.NoError(t, svc.Delete(context.Background(), key))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePattern_DropsMatchingKeys(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := cache.NewService(client)

	pattern := cache.BookingListPattern()
	keys := []string{
		cache.BookingListKey("", "", 1, 10),
		cache.BookingListKey("CONFIRMED", "", 1, 10),
	}
	mock.ExpectKeys(pattern).SetVal(keys)
	mock.ExpectDel(keys...).SetVal(int64(len(keys)))

	assert.NoError(t, svc.DeletePattern(context.Background(), pattern))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePattern_NoMatchesIsNoop(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := cache.NewService(client)

	mock.ExpectKeys(cache.BookingListPattern()).SetVal([]string{})

	assert.NoError(t, svc.DeletePattern(context.Background(), cache.BookingListPattern()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingKey_Prefixed(t *testing.T) {
	assert.Equal(t, "conferly:booking:b-1", cache.BookingKey("b-1"))
}

func TestBookingListKey_EncodesQuery(t *testing.T) {
	key := cache.BookingListKey("PENDING", "pass", 2, 25)
	assert.Equal(t, "conferly:bookings:list:PENDING:pass:2:25", key)
}
