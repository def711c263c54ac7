package dto

import "shareit/internal/model"

// CreateBookingRequest asks to rent an item for [Start, End).
type CreateBookingRequest struct {
	ItemID int64      `json:"itemId" validate:"required"`
	Start  *LocalTime `json:"start" validate:"required"`
	End    *LocalTime `json:"end" validate:"required"`
}

type BookerDto struct {
	ID int64 `json:"id"`
}

type BookedItemDto struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingDto struct {
	ID     int64               `json:"id"`
	Start  LocalTime           `json:"start"`
	End    LocalTime           `json:"end"`
	Status model.BookingStatus `json:"status"`
	Booker BookerDto           `json:"booker"`
	Item   BookedItemDto       `json:"item"`
}

// ToBookingDto expects Item to be loaded.
func ToBookingDto(b model.Booking) BookingDto {
	return BookingDto{
		ID:     b.ID,
		Start:  NewLocalTime(b.Start),
		End:    NewLocalTime(b.End),
		Status: b.Status,
		Booker: BookerDto{ID: b.BookerID},
		Item:   BookedItemDto{ID: b.ItemID, Name: b.Item.Name},
	}
}

func ToBookingDtos(bs []model.Booking) []BookingDto {
	out := make([]BookingDto, 0, len(bs))
	for _, b := range bs {
		out = append(out, ToBookingDto(b))
	}
	return out
}
