package cache

import "fmt"

// Key namespace for the application cache
const keyPrefix = "conferly:"

// BookingKey returns the cache key for a single booking
func BookingKey(id string) string {
	return keyPrefix + "booking:" + id
}

// BookingListKey returns the cache key for one page of the admin
// booking listing
func BookingListKey(status, bookingType string, page, limit int) string {
	return fmt.Sprintf("%sbookings:list:%s:%s:%d:%d", keyPrefix, status, bookingType, page, limit)
}

// BookingListPattern matches every cached booking listing page
func BookingListPattern() string {
	return keyPrefix + "bookings:list:*"
}
