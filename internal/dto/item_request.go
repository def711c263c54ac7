package dto

import "shareit/internal/model"

type CreateItemRequestRequest struct {
	Description string `json:"description" validate:"required,notblank"`
}

// RequestAnswerDto is an item listed in answer to a request.
type RequestAnswerDto struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"ownerId"`
}

type ItemRequestDto struct {
	ID          int64              `json:"id"`
	Description string             `json:"description"`
	Created     LocalTime          `json:"created"`
	Items       []RequestAnswerDto `json:"items"`
}

func ToItemRequestDto(r model.ItemRequest) ItemRequestDto {
	items := make([]RequestAnswerDto, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, RequestAnswerDto{ID: it.ID, Name: it.Name, OwnerID: it.OwnerID})
	}
	return ItemRequestDto{
		ID:          r.ID,
		Description: r.Description,
		Created:     NewLocalTime(r.Created),
		Items:       items,
	}
}

func ToItemRequestDtos(rs []model.ItemRequest) []ItemRequestDto {
	out := make([]ItemRequestDto, 0, len(rs))
	for _, r := range rs {
		out = append(out, ToItemRequestDto(r))
	}
	return out
}
