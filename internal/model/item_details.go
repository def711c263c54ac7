package model

// ItemDetails is an item with the approved bookings around now and its
// comments.
type ItemDetails struct {
	Item        Item
	LastBooking *Booking
	NextBooking *Booking
	Comments    []Comment
}
