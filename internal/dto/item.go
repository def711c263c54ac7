package dto

import "shareit/internal/model"

type CreateItemRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=200"`
	Description string `json:"description" validate:"required,notblank"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

// UpdateItemRequest replaces non-blank strings and a non-null availability.
type UpdateItemRequest struct {
	Name        string `json:"name,omitempty" validate:"max=200"`
	Description string `json:"description,omitempty"`
	Available   *bool  `json:"available,omitempty"`
}

type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,notblank"`
}

// BookingShortDto is the last/next booking shown on an item.
type BookingShortDto struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

type CommentDto struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    LocalTime `json:"created"`
}

type ItemDto struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Available   bool             `json:"available"`
	RequestID   *int64           `json:"requestId,omitempty"`
	LastBooking *BookingShortDto `json:"lastBooking"`
	NextBooking *BookingShortDto `json:"nextBooking"`
	Comments    []CommentDto     `json:"comments"`
}

func ToItemDto(it model.Item) ItemDto {
	return ItemDto{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
		Comments:    []CommentDto{},
	}
}

func ToItemDtos(items []model.Item) []ItemDto {
	out := make([]ItemDto, 0, len(items))
	for _, it := range items {
		out = append(out, ToItemDto(it))
	}
	return out
}

func ToItemDetailsDto(d model.ItemDetails) ItemDto {
	out := ToItemDto(d.Item)
	out.LastBooking = toBookingShort(d.LastBooking)
	out.NextBooking = toBookingShort(d.NextBooking)
	out.Comments = ToCommentDtos(d.Comments)
	return out
}

func ToItemDetailsDtos(ds []model.ItemDetails) []ItemDto {
	out := make([]ItemDto, 0, len(ds))
	for _, d := range ds {
		out = append(out, ToItemDetailsDto(d))
	}
	return out
}

func toBookingShort(b *model.Booking) *BookingShortDto {
	if b == nil {
		return nil
	}
	return &BookingShortDto{ID: b.ID, BookerID: b.BookerID}
}

func ToCommentDto(c model.Comment) CommentDto {
	return CommentDto{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: c.Author.Name,
		Created:    NewLocalTime(c.Created),
	}
}

func ToCommentDtos(cs []model.Comment) []CommentDto {
	out := make([]CommentDto, 0, len(cs))
	for _, c := range cs {
		out = append(out, ToCommentDto(c))
	}
	return out
}
