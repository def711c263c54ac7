package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shareit/internal/config"
	"shareit/internal/db"
	"shareit/internal/dto"
	"shareit/internal/errors"
	"shareit/internal/handler"
	"shareit/internal/model"
	"shareit/internal/repository"
	"shareit/internal/service"
)

type testServer struct {
	e  *echo.Echo
	db *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gdb, err := db.NewSQLite(filepath.Join(t.TempDir(), "shareit.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	nop := zerolog.Nop()
	users := service.NewUserService(repository.NewUserRepository(gdb), nil, time.Minute, &nop)
	items := repository.NewItemRepository(gdb)
	bookings := repository.NewBookingRepository(gdb)
	comments := repository.NewCommentRepository(gdb)
	requests := repository.NewItemRequestRepository(gdb)

	e := echo.New()
	Register(e, &config.Config{}, &nop, Handlers{
		Users:    handler.NewUserHandler(users),
		Items:    handler.NewItemHandler(service.NewItemService(items, bookings, comments, requests, users, service.UTCNow, &nop)),
		Bookings: handler.NewBookingHandler(service.NewBookingService(bookings, items, users, service.UTCNow, &nop)),
		Requests: handler.NewItemRequestHandler(service.NewItemRequestService(requests, users, service.UTCNow, &nop)),
	})
	return &testServer{e: e, db: gdb}
}

func (s *testServer) do(t *testing.T, method, path string, userID int64, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if userID > 0 {
		req.Header.Set(handler.HeaderUserID, fmt.Sprint(userID))
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (s *testServer) createUser(t *testing.T, name, email string) dto.UserDto {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/users", 0, map[string]string{"name": name, "email": email})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[dto.UserDto](t, rec)
}

func (s *testServer) createItem(t *testing.T, ownerID int64, name string) dto.ItemDto {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/items", ownerID, map[string]any{
		"name": name, "description": name + " for rent", "available": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[dto.ItemDto](t, rec)
}

func (s *testServer) createBooking(t *testing.T, bookerID, itemID int64, start, end time.Time) *httptest.ResponseRecorder {
	t.Helper()
	return s.do(t, http.MethodPost, "/bookings", bookerID, map[string]any{
		"itemId": itemID,
		"start":  dto.NewLocalTime(start),
		"end":    dto.NewLocalTime(end),
	})
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/healthz", 0, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestUsers_Lifecycle(t *testing.T) {
	s := newTestServer(t)
	alice := s.createUser(t, "Alice", "alice@example.com")
	assert.Positive(t, alice.ID)

	rec := s.do(t, http.MethodPost, "/users", 0, map[string]string{"name": "Other", "email": "ALICE@example.com"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "EMAIL_TAKEN", decode[errors.ErrorResponse](t, rec).Code)

	rec = s.do(t, http.MethodPost, "/users", 0, map[string]string{"name": " ", "email": "x@example.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode[errors.ErrorResponse](t, rec).Code)

	rec = s.do(t, http.MethodPatch, fmt.Sprintf("/users/%d", alice.ID), 0, map[string]string{"name": "Alicia"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[dto.UserDto](t, rec)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)

	rec = s.do(t, http.MethodPut, "/users", 0, map[string]any{"id": alice.ID, "email": "alicia@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alicia@example.com", decode[dto.UserDto](t, rec).Email)

	rec = s.do(t, http.MethodPut, "/users", 0, map[string]any{"name": "No id"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/users", 0, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]dto.UserDto](t, rec), 1)

	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/users/%d", alice.ID), 0, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/users/%d", alice.ID), 0, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "USER_NOT_FOUND", decode[errors.ErrorResponse](t, rec).Code)

	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/users/%d", alice.ID), 0, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestItems_OwnershipAndSearch(t *testing.T) {
	s := newTestServer(t)
	owner := s.createUser(t, "Owner", "owner@example.com")
	other := s.createUser(t, "Other", "other@example.com")
	drill := s.createItem(t, owner.ID, "Drill")
	s.createItem(t, owner.ID, "Saw")

	rec := s.do(t, http.MethodPost, "/items", 0, map[string]any{"name": "x", "description": "y", "available": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "MISSING_USER_HEADER", decode[errors.ErrorResponse](t, rec).Code)

	rec = s.do(t, http.MethodPost, "/items", owner.ID, map[string]any{"name": "x", "description": "y"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/items", 999, map[string]any{"name": "x", "description": "y", "available": true})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPatch, fmt.Sprintf("/items/%d", drill.ID), other.ID, map[string]any{"name": "Mine"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPatch, fmt.Sprintf("/items/%d", drill.ID), owner.ID, map[string]any{"available": false})
	require.Equal(t, http.StatusOK, rec.Code)
	patched := decode[dto.ItemDto](t, rec)
	assert.False(t, patched.Available)
	assert.Equal(t, "Drill", patched.Name)

	rec = s.do(t, http.MethodGet, "/items/search?text=SAW", 0, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	found := decode[[]dto.ItemDto](t, rec)
	require.Len(t, found, 1)
	assert.Equal(t, "Saw", found[0].Name)

	rec = s.do(t, http.MethodGet, "/items/search?text=drill", 0, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]dto.ItemDto](t, rec))

	rec = s.do(t, http.MethodGet, "/items/search?text=", 0, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))

	rec = s.do(t, http.MethodGet, "/items?from=1&size=1", owner.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[[]dto.ItemDto](t, rec)
	require.Len(t, page, 1)
	assert.Equal(t, "Saw", page[0].Name)

	rec = s.do(t, http.MethodGet, "/items?size=0", owner.ID, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(t, http.MethodGet, "/items?from=-1", owner.ID, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookings_Flow(t *testing.T) {
	s := newTestServer(t)
	owner := s.createUser(t, "Owner", "owner@example.com")
	booker := s.createUser(t, "Booker", "booker@example.com")
	stranger := s.createUser(t, "Stranger", "stranger@example.com")
	item := s.createItem(t, owner.ID, "Tent")

	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
	end := start.Add(48 * time.Hour)

	rec := s.createBooking(t, owner.ID, item.ID, start, end)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.createBooking(t, booker.ID, item.ID, end, start)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.createBooking(t, booker.ID, item.ID, start.Add(-72*time.Hour), end)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.createBooking(t, booker.ID, item.ID, start, end)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	booking := decode[dto.BookingDto](t, rec)
	assert.Equal(t, model.BookingStatusWaiting, booking.Status)
	assert.Equal(t, booker.ID, booking.Booker.ID)
	assert.Equal(t, "Tent", booking.Item.Name)
	assert.True(t, start.Equal(booking.Start.Time))

	path := fmt.Sprintf("/bookings/%d", booking.ID)
	rec = s.do(t, http.MethodGet, path, stranger.ID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPatch, path+"?approved=true", booker.ID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPatch, path+"?approved=maybe", owner.ID, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPatch, path+"?approved=true", owner.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.BookingStatusApproved, decode[dto.BookingDto](t, rec).Status)

	rec = s.do(t, http.MethodPatch, path+"?approved=false", owner.ID, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodGet, "/bookings?state=future", booker.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]dto.BookingDto](t, rec), 1)

	rec = s.do(t, http.MethodGet, "/bookings/owner?state=PAST", owner.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]dto.BookingDto](t, rec))

	rec = s.do(t, http.MethodGet, "/bookings?state=SOMETIME", booker.ID, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Unknown state: SOMETIME", decode[errors.ErrorResponse](t, rec).Error)

	rec = s.do(t, http.MethodPatch, "/bookings?approved=true", owner.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/items/%d", item.ID), stranger.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[dto.ItemDto](t, rec)
	assert.Nil(t, view.LastBooking)
	require.NotNil(t, view.NextBooking)
	assert.Equal(t, booking.ID, view.NextBooking.ID)
}

func TestBookings_DecideFirstWaiting(t *testing.T) {
	s := newTestServer(t)
	owner := s.createUser(t, "Owner", "owner@example.com")
	booker := s.createUser(t, "Booker", "booker@example.com")
	item := s.createItem(t, owner.ID, "Kayak")

	base := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
	later := decode[dto.BookingDto](t, s.createBooking(t, booker.ID, item.ID, base.Add(48*time.Hour), base.Add(72*time.Hour)))
	earlier := decode[dto.BookingDto](t, s.createBooking(t, booker.ID, item.ID, base, base.Add(24*time.Hour)))

	rec := s.do(t, http.MethodPatch, "/bookings?approved=false", owner.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decided := decode[dto.BookingDto](t, rec)
	assert.Equal(t, earlier.ID, decided.ID)
	assert.Equal(t, model.BookingStatusRejected, decided.Status)

	rec = s.do(t, http.MethodGet, "/bookings?state=WAITING", booker.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	waiting := decode[[]dto.BookingDto](t, rec)
	require.Len(t, waiting, 1)
	assert.Equal(t, later.ID, waiting[0].ID)
}

func TestComments(t *testing.T) {
	s := newTestServer(t)
	owner := s.createUser(t, "Owner", "owner@example.com")
	booker := s.createUser(t, "Booker", "booker@example.com")
	item := s.createItem(t, owner.ID, "Ladder")
	commentPath := fmt.Sprintf("/items/%d/comment", item.ID)

	rec := s.do(t, http.MethodPost, commentPath, booker.ID, map[string]string{"text": "Great"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "COMMENT_NOT_ALLOWED", decode[errors.ErrorResponse](t, rec).Code)

	now := time.Now().UTC()
	require.NoError(t, s.db.Omit(clause.Associations).Create(&model.Booking{
		Start:    now.Add(-72 * time.Hour),
		End:      now.Add(-48 * time.Hour),
		ItemID:   item.ID,
		BookerID: booker.ID,
		Status:   model.BookingStatusApproved,
	}).Error)

	rec = s.do(t, http.MethodPost, commentPath, booker.ID, map[string]string{"text": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, commentPath, booker.ID, map[string]string{"text": "Great"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	comment := decode[dto.CommentDto](t, rec)
	assert.Equal(t, "Booker", comment.AuthorName)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/items/%d", item.ID), owner.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[dto.ItemDto](t, rec)
	require.Len(t, view.Comments, 1)
	assert.Equal(t, "Great", view.Comments[0].Text)
	require.NotNil(t, view.LastBooking)
	assert.Equal(t, booker.ID, view.LastBooking.BookerID)
}

func TestRequests(t *testing.T) {
	s := newTestServer(t)
	asker := s.createUser(t, "Asker", "asker@example.com")
	owner := s.createUser(t, "Owner", "owner@example.com")

	rec := s.do(t, http.MethodPost, "/requests", asker.ID, map[string]string{"description": "Need a projector"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	req := decode[dto.ItemRequestDto](t, rec)
	assert.Empty(t, req.Items)

	rec = s.do(t, http.MethodPost, "/items", owner.ID, map[string]any{
		"name": "Projector", "description": "HD projector", "available": true, "requestId": req.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	answer := decode[dto.ItemDto](t, rec)
	require.NotNil(t, answer.RequestID)
	assert.Equal(t, req.ID, *answer.RequestID)

	rec = s.do(t, http.MethodGet, "/requests", asker.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	own := decode[[]dto.ItemRequestDto](t, rec)
	require.Len(t, own, 1)
	require.Len(t, own[0].Items, 1)
	assert.Equal(t, owner.ID, own[0].Items[0].OwnerID)

	rec = s.do(t, http.MethodGet, "/requests/all", asker.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]dto.ItemRequestDto](t, rec))

	rec = s.do(t, http.MethodGet, "/requests/all?from=0&size=5", owner.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]dto.ItemRequestDto](t, rec), 1)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/requests/%d", req.ID), owner.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Need a projector", decode[dto.ItemRequestDto](t, rec).Description)

	rec = s.do(t, http.MethodGet, "/requests/404", owner.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
