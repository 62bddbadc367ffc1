package entity

import "time"

// BookingFilter narrows the admin booking list.
// Used by repository layer to avoid coupling with delivery DTOs.
type BookingFilter struct {
	Status *BookingStatus
	Type   *BookingType
	From   *time.Time // inclusive
	To     *time.Time // exclusive
}
