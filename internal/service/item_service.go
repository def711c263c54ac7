package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"shareit/internal/dto"
	"shareit/internal/errors"
	"shareit/internal/logging"
	"shareit/internal/model"
	"shareit/internal/repository"
)

// ItemService manages the catalog and item comments.
type ItemService interface {
	CreateItem(ctx context.Context, ownerID int64, req dto.CreateItemRequest) (*model.Item, error)
	UpdateItem(ctx context.Context, userID, itemID int64, req dto.UpdateItemRequest) (*model.Item, error)
	GetItem(ctx context.Context, userID, itemID int64) (*model.ItemDetails, error)
	ListOwnItems(ctx context.Context, ownerID int64, page model.Page) ([]model.ItemDetails, error)
	SearchItems(ctx context.Context, text string, page model.Page) ([]model.Item, error)
	AddComment(ctx context.Context, authorID, itemID int64, req dto.CreateCommentRequest) (*model.Comment, error)
}

type itemService struct {
	items    repository.ItemRepository
	bookings repository.BookingRepository
	comments repository.CommentRepository
	requests repository.ItemRequestRepository
	users    UserService
	now      Clock
	logger   *zerolog.Logger
}

// NewItemService creates a new item service.
func NewItemService(
	items repository.ItemRepository,
	bookings repository.BookingRepository,
	comments repository.CommentRepository,
	requests repository.ItemRequestRepository,
	users UserService,
	now Clock,
	logger *zerolog.Logger,
) ItemService {
	return &itemService{
		items:    items,
		bookings: bookings,
		comments: comments,
		requests: requests,
		users:    users,
		now:      now,
		logger:   logging.Component(logger, "items"),
	}
}

func (s *itemService) CreateItem(ctx context.Context, ownerID int64, req dto.CreateItemRequest) (*model.Item, error) {
	if _, err := s.users.GetUser(ctx, ownerID); err != nil {
		return nil, err
	}
	if req.RequestID != nil {
		if _, err := s.requests.FindByID(ctx, *req.RequestID); err != nil {
			return nil, notFound(err, errors.ErrRequestNotFound, *req.RequestID)
		}
	}

	item := &model.Item{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Available:   req.Available != nil && *req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) UpdateItem(ctx context.Context, userID, itemID int64, req dto.UpdateItemRequest) (*model.Item, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, notFound(err, errors.ErrItemNotFound, itemID)
	}
	if item.OwnerID != userID {
		return nil, errors.ErrNotItemOwner
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		item.Name = name
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		item.Description = desc
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) GetItem(ctx context.Context, userID, itemID int64) (*model.ItemDetails, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, notFound(err, errors.ErrItemNotFound, itemID)
	}

	details, err := s.details(ctx, []model.Item{*item})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (s *itemService) ListOwnItems(ctx context.Context, ownerID int64, page model.Page) ([]model.ItemDetails, error) {
	if _, err := s.users.GetUser(ctx, ownerID); err != nil {
		return nil, err
	}
	items, err := s.items.ListByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, items)
}

func (s *itemService) SearchItems(ctx context.Context, text string, page model.Page) ([]model.Item, error) {
	return s.items.Search(ctx, text, page)
}

func (s *itemService) AddComment(ctx context.Context, authorID, itemID int64, req dto.CreateCommentRequest) (*model.Comment, error) {
	author, err := s.users.GetUser(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		return nil, notFound(err, errors.ErrItemNotFound, itemID)
	}

	now := s.now()
	rented, err := s.bookings.HasFinishedBooking(ctx, authorID, itemID, now)
	if err != nil {
		return nil, err
	}
	if !rented {
		return nil, errors.ErrCommentNotAllowed
	}

	comment := &model.Comment{
		Text:     strings.TrimSpace(req.Text),
		ItemID:   itemID,
		AuthorID: authorID,
		Created:  now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	comment.Author = *author
	s.logger.Info().Int64("item_id", itemID).Int64("author_id", authorID).Msg("comment added")
	return comment, nil
}

// details attaches the last and next approved bookings relative to now and
// the comments of every item, in two queries.
func (s *itemService) details(ctx context.Context, items []model.Item) ([]model.ItemDetails, error) {
	out := make([]model.ItemDetails, len(items))
	if len(items) == 0 {
		return out, nil
	}

	ids := make([]int64, len(items))
	index := make(map[int64]int, len(items))
	for i, it := range items {
		ids[i] = it.ID
		index[it.ID] = i
		out[i] = model.ItemDetails{Item: it, Comments: []model.Comment{}}
	}

	approved, err := s.bookings.ListApprovedByItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range approved {
		b := &approved[i]
		d := &out[index[b.ItemID]]
		switch {
		case b.Start.Before(now):
			if d.LastBooking == nil || b.Start.After(d.LastBooking.Start) {
				d.LastBooking = b
			}
		case b.Start.After(now):
			if d.NextBooking == nil || b.Start.Before(d.NextBooking.Start) {
				d.NextBooking = b
			}
		}
	}

	comments, err := s.comments.ListByItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		d := &out[index[c.ItemID]]
		d.Comments = append(d.Comments, c)
	}
	return out, nil
}
