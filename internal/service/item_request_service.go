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

// ItemRequestService manages the item request board.
type ItemRequestService interface {
	CreateRequest(ctx context.Context, requesterID int64, req dto.CreateItemRequestRequest) (*model.ItemRequest, error)
	ListOwn(ctx context.Context, requesterID int64) ([]model.ItemRequest, error)
	ListOthers(ctx context.Context, userID int64, page model.Page) ([]model.ItemRequest, error)
	GetRequest(ctx context.Context, userID, requestID int64) (*model.ItemRequest, error)
}

type itemRequestService struct {
	requests repository.ItemRequestRepository
	users    UserService
	now      Clock
	logger   *zerolog.Logger
}

// NewItemRequestService creates a new item request service.
func NewItemRequestService(requests repository.ItemRequestRepository, users UserService, now Clock, logger *zerolog.Logger) ItemRequestService {
	return &itemRequestService{requests: requests, users: users, now: now, logger: logging.Component(logger, "requests")}
}

func (s *itemRequestService) CreateRequest(ctx context.Context, requesterID int64, req dto.CreateItemRequestRequest) (*model.ItemRequest, error) {
	if _, err := s.users.GetUser(ctx, requesterID); err != nil {
		return nil, err
	}
	request := &model.ItemRequest{
		Description: strings.TrimSpace(req.Description),
		RequesterID: requesterID,
		Created:     s.now(),
		Items:       []model.Item{},
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}
	s.logger.Debug().Int64("request_id", request.ID).Int64("requester_id", requesterID).Msg("item request created")
	return request, nil
}

func (s *itemRequestService) ListOwn(ctx context.Context, requesterID int64) ([]model.ItemRequest, error) {
	if _, err := s.users.GetUser(ctx, requesterID); err != nil {
		return nil, err
	}
	return s.requests.ListByRequester(ctx, requesterID)
}

func (s *itemRequestService) ListOthers(ctx context.Context, userID int64, page model.Page) ([]model.ItemRequest, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.requests.ListOthers(ctx, userID, page)
}

func (s *itemRequestService) GetRequest(ctx context.Context, userID, requestID int64) (*model.ItemRequest, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	request, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, notFound(err, errors.ErrRequestNotFound, requestID)
	}
	return request, nil
}
