package service

import (
	"context"
	"errors"
	"testing"

	"travelbuddy/internal/models"
	"travelbuddy/internal/repository"
)

func TestSendRequestToSelf(t *testing.T) {
	svc := NewBuddyService(noopBuddyRepo(), noopUserRepo(), noopBlogRepo())

	_, err := svc.SendRequest(context.Background(), 7, 7)

	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation app error, got %#v", err)
	}
}

func TestSendRequestAlreadyBuddies(t *testing.T) {
	buddyRepo := noopBuddyRepo()
	buddyRepo.getRequestBetweenUsersFn = func(context.Context, uint, uint) (*models.BuddyRequest, error) {
		return &models.BuddyRequest{Status: models.BuddyRequestStatusAccepted}, nil
	}
	svc := NewBuddyService(buddyRepo, noopUserRepo(), noopBlogRepo())

	_, err := svc.SendRequest(context.Background(), 1, 2)

	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "CONFLICT" {
		t.Fatalf("expected conflict app error, got %#v", err)
	}
	if appErr.Message != "You are already buddies" {
		t.Errorf("unexpected message %q", appErr.Message)
	}
}

func TestSendRequestAlreadyPendingFromRequester(t *testing.T) {
	buddyRepo := noopBuddyRepo()
	buddyRepo.getRequestBetweenUsersFn = func(context.Context, uint, uint) (*models.BuddyRequest, error) {
		return &models.BuddyRequest{RequesterID: 1, ReceiverID: 2, Status: models.BuddyRequestStatusPending}, nil
	}
	svc := NewBuddyService(buddyRepo, noopUserRepo(), noopBlogRepo())

	_, err := svc.SendRequest(context.Background(), 1, 2)

	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "CONFLICT" {
		t.Fatalf("expected conflict app error, got %#v", err)
	}
}

func TestSendRequestReceiverMissing(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}
	svc := NewBuddyService(noopBuddyRepo(), userRepo, noopBlogRepo())

	_, err := svc.SendRequest(context.Background(), 1, 99)

	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected not found app error, got %#v", err)
	}
}

func TestSendRequestRejectedAllowsRetry(t *testing.T) {
	var created *models.BuddyRequest
	var deletedID uint
	buddyRepo := noopBuddyRepo()
	buddyRepo.getRequestBetweenUsersFn = func(context.Context, uint, uint) (*models.BuddyRequest, error) {
		return &models.BuddyRequest{ID: 7, Status: models.BuddyRequestStatusRejected}, nil
	}
	buddyRepo.deleteFn = func(_ context.Context, requestID uint) error {
		deletedID = requestID
		return nil
	}
	buddyRepo.createFn = func(_ context.Context, request *models.BuddyRequest) error {
		request.ID = 42
		created = request
		return nil
	}
	buddyRepo.getByIDFn = func(context.Context, uint) (*models.BuddyRequest, error) {
		return created, nil
	}
	svc := NewBuddyService(buddyRepo, noopUserRepo(), noopBlogRepo())

	request, err := svc.SendRequest(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if request.RequesterID != 1 || request.ReceiverID != 2 {
		t.Errorf("unexpected request %+v", request)
	}
	if request.Status != models.BuddyRequestStatusPending {
		t.Errorf("expected pending status, got %s", request.Status)
	}
	if deletedID != 7 {
		t.Errorf("expected rejected request 7 to be deleted, got %d", deletedID)
	}
}

func TestAcceptRequestNotReceiver(t *testing.T) {
	buddyRepo := noopBuddyRepo()
	buddyRepo.getByIDFn = func(context.Context, uint) (*models.BuddyRequest, error) {
		return &models.BuddyRequest{RequesterID: 1, ReceiverID: 2, Status: models.BuddyRequestStatusPending}, nil
	}
	svc := NewBuddyService(buddyRepo, noopUserRepo(), noopBlogRepo())

	_, err := svc.AcceptRequest(context.Background(), 3, 10)

	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "FORBIDDEN" {
		t.Fatalf("expected forbidden app error, got %#v", err)
	}
}

func TestAcceptRequestNotPending(t *testing.T) {
	buddyRepo := noopBuddyRepo()
	buddyRepo.getByIDFn = func(context.Context, uint) (*models.BuddyRequest, error) {
		return &models.BuddyRequest{ReceiverID: 2, Status: models.BuddyRequestStatusAccepted}, nil
	}
	svc := NewBuddyService(buddyRepo, noopUserRepo(), noopBlogRepo())

	_, err := svc.AcceptRequest(context.Background(), 2, 10)

	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "CONFLICT" {
		t.Fatalf("expected conflict app error, got %#v", err)
	}
}

func TestCancelRequestNotRequester(t *testing.T) {
	buddyRepo := noopBuddyRepo()
	buddyRepo.getByIDFn = func(context.Context, uint) (*models.BuddyRequest, error) {
		return &models.BuddyRequest{RequesterID: 1, ReceiverID: 2, Status: models.BuddyRequestStatusPending}, nil
	}
	svc := NewBuddyService(buddyRepo, noopUserRepo(), noopBlogRepo())

	_, err := svc.CancelRequest(context.Background(), 2, 10)

	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "FORBIDDEN" {
		t.Fatalf("expected forbidden app error, got %#v", err)
	}
}

func TestCancelRequestDeletes(t *testing.T) {
	deleted := uint(0)
	buddyRepo := noopBuddyRepo()
	buddyRepo.getByIDFn = func(context.Context, uint) (*models.BuddyRequest, error) {
		return &models.BuddyRequest{RequesterID: 1, ReceiverID: 2, Status: models.BuddyRequestStatusPending}, nil
	}
	buddyRepo.deleteFn = func(_ context.Context, requestID uint) error {
		deleted = requestID
		return nil
	}
	svc := NewBuddyService(buddyRepo, noopUserRepo(), noopBlogRepo())

	if _, err := svc.CancelRequest(context.Background(), 1, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 10 {
		t.Errorf("expected delete of request 10, got %d", deleted)
	}
}

func TestMatchmakingEmptyInterests(t *testing.T) {
	svc := NewBuddyService(noopBuddyRepo(), noopUserRepo(), noopBlogRepo())

	matches, err := svc.Matchmaking(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matches == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}

func TestMatchmakingScoresAndSorts(t *testing.T) {
	// User 1 engaged with blogs 10, 20, 30. Candidate 2 shares one blog,
	// candidate 3 shares three, candidate 4 shares none, and candidate 5
	// is already a buddy.
	likes := map[uint][]uint{
		1: {10, 20},
		2: {10},
		3: {10, 20},
		4: {99},
		5: {10, 20, 30},
	}
	wishlists := map[uint][]uint{
		1: {30},
		3: {30},
	}

	blogRepo := noopBlogRepo()
	blogRepo.getLikedBlogIDsFn = func(_ context.Context, userID uint) ([]uint, error) {
		return likes[userID], nil
	}
	blogRepo.getWishlistedBlogsFn = func(_ context.Context, userID uint) ([]uint, error) {
		return wishlists[userID], nil
	}

	buddyRepo := noopBuddyRepo()
	buddyRepo.getBuddyIDsFn = func(context.Context, uint) ([]uint, error) {
		return []uint{5}, nil
	}

	userRepo := noopUserRepo()
	userRepo.listCustomersFn = func(context.Context, repository.CustomerFilter) ([]models.User, error) {
		return []models.User{
			{ID: 1, Name: "Self"},
			{ID: 2, Name: "One Shared"},
			{ID: 3, Name: "Three Shared"},
			{ID: 4, Name: "No Overlap"},
			{ID: 5, Name: "Buddy"},
		}, nil
	}
	userRepo.countTripsCompletedFn = func(_ context.Context, userID uint) (int64, error) {
		return int64(userID), nil
	}

	svc := NewBuddyService(buddyRepo, userRepo, blogRepo)

	matches, err := svc.Matchmaking(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].ID != 3 || matches[0].CommonInterests != 3 {
		t.Errorf("expected candidate 3 first with 3 shared, got %+v", matches[0])
	}
	if matches[1].ID != 2 || matches[1].CommonInterests != 1 {
		t.Errorf("expected candidate 2 second with 1 shared, got %+v", matches[1])
	}
	if matches[0].TripsCompleted != 3 {
		t.Errorf("expected trips completed 3, got %d", matches[0].TripsCompleted)
	}
}
