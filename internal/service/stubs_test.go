package service

import (
	"context"
	"time"

	"travelbuddy/internal/models"
	"travelbuddy/internal/repository"
)

type userRepoStub struct {
	getByIDFn             func(context.Context, uint) (*models.User, error)
	getCachedFn           func(context.Context, uint) (*models.User, error)
	getByEmailFn          func(context.Context, string) (*models.User, error)
	createFn              func(context.Context, *models.User) error
	updateFn              func(context.Context, *models.User) error
	setPremiumFn          func(context.Context, uint, bool) error
	deleteFn              func(context.Context, uint) error
	listCustomersFn       func(context.Context, repository.CustomerFilter) ([]models.User, error)
	countTripsCompletedFn func(context.Context, uint) (int64, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetCached(ctx context.Context, id uint) (*models.User, error) {
	return s.getCachedFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) SetPremium(ctx context.Context, id uint, premium bool) error {
	return s.setPremiumFn(ctx, id, premium)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) ListCustomers(ctx context.Context, filter repository.CustomerFilter) ([]models.User, error) {
	return s.listCustomersFn(ctx, filter)
}
func (s *userRepoStub) CountTripsCompleted(ctx context.Context, userID uint) (int64, error) {
	return s.countTripsCompletedFn(ctx, userID)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:             func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getCachedFn:           func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:          func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		createFn:              func(context.Context, *models.User) error { return nil },
		updateFn:              func(context.Context, *models.User) error { return nil },
		setPremiumFn:          func(context.Context, uint, bool) error { return nil },
		deleteFn:              func(context.Context, uint) error { return nil },
		listCustomersFn:       func(context.Context, repository.CustomerFilter) ([]models.User, error) { return nil, nil },
		countTripsCompletedFn: func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

type buddyRepoStub struct {
	createFn                 func(context.Context, *models.BuddyRequest) error
	getByIDFn                func(context.Context, uint) (*models.BuddyRequest, error)
	getRequestBetweenUsersFn func(context.Context, uint, uint) (*models.BuddyRequest, error)
	getBuddiesFn             func(context.Context, uint) ([]models.User, error)
	getBuddyIDsFn            func(context.Context, uint) ([]uint, error)
	getPendingIncomingFn     func(context.Context, uint) ([]models.BuddyRequest, error)
	getPendingOutgoingFn     func(context.Context, uint) ([]models.BuddyRequest, error)
	updateStatusFn           func(context.Context, uint, models.BuddyRequestStatus) error
	deleteFn                 func(context.Context, uint) error
}

func (s *buddyRepoStub) Create(ctx context.Context, request *models.BuddyRequest) error {
	return s.createFn(ctx, request)
}
func (s *buddyRepoStub) GetByID(ctx context.Context, id uint) (*models.BuddyRequest, error) {
	return s.getByIDFn(ctx, id)
}
func (s *buddyRepoStub) GetRequestBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.BuddyRequest, error) {
	return s.getRequestBetweenUsersFn(ctx, userID1, userID2)
}
func (s *buddyRepoStub) GetBuddies(ctx context.Context, userID uint) ([]models.User, error) {
	return s.getBuddiesFn(ctx, userID)
}
func (s *buddyRepoStub) GetBuddyIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.getBuddyIDsFn(ctx, userID)
}
func (s *buddyRepoStub) GetPendingIncoming(ctx context.Context, userID uint) ([]models.BuddyRequest, error) {
	return s.getPendingIncomingFn(ctx, userID)
}
func (s *buddyRepoStub) GetPendingOutgoing(ctx context.Context, userID uint) ([]models.BuddyRequest, error) {
	return s.getPendingOutgoingFn(ctx, userID)
}
func (s *buddyRepoStub) UpdateStatus(ctx context.Context, requestID uint, status models.BuddyRequestStatus) error {
	return s.updateStatusFn(ctx, requestID, status)
}
func (s *buddyRepoStub) Delete(ctx context.Context, requestID uint) error {
	return s.deleteFn(ctx, requestID)
}

func noopBuddyRepo() *buddyRepoStub {
	return &buddyRepoStub{
		createFn:  func(context.Context, *models.BuddyRequest) error { return nil },
		getByIDFn: func(context.Context, uint) (*models.BuddyRequest, error) { return &models.BuddyRequest{}, nil },
		getRequestBetweenUsersFn: func(context.Context, uint, uint) (*models.BuddyRequest, error) {
			return nil, nil
		},
		getBuddiesFn:         func(context.Context, uint) ([]models.User, error) { return nil, nil },
		getBuddyIDsFn:        func(context.Context, uint) ([]uint, error) { return nil, nil },
		getPendingIncomingFn: func(context.Context, uint) ([]models.BuddyRequest, error) { return nil, nil },
		getPendingOutgoingFn: func(context.Context, uint) ([]models.BuddyRequest, error) { return nil, nil },
		updateStatusFn:       func(context.Context, uint, models.BuddyRequestStatus) error { return nil },
		deleteFn:             func(context.Context, uint) error { return nil },
	}
}

type blogRepoStub struct {
	createFn              func(context.Context, *models.Blog) error
	getByIDFn             func(context.Context, uint) (*models.Blog, error)
	listFn                func(context.Context, string) ([]models.Blog, error)
	deleteFn              func(context.Context, uint) error
	countLikesFn          func(context.Context, uint) (int64, error)
	countLikesForBlogsFn  func(context.Context, []uint) (map[uint]int64, error)
	getLikeFn             func(context.Context, uint, uint) (*models.Like, error)
	createLikeFn          func(context.Context, *models.Like) error
	deleteLikeFn          func(context.Context, uint, uint) error
	getLikedBlogIDsFn     func(context.Context, uint) ([]uint, error)
	getWishlistItemFn     func(context.Context, uint, uint) (*models.WishlistItem, error)
	createWishlistItemFn  func(context.Context, *models.WishlistItem) error
	deleteWishlistItemFn  func(context.Context, uint, uint) error
	getWishlistedBlogsFn  func(context.Context, uint) ([]uint, error)
	getWishlistBlogRowsFn func(context.Context, uint) ([]models.Blog, error)
}

func (s *blogRepoStub) Create(ctx context.Context, blog *models.Blog) error {
	return s.createFn(ctx, blog)
}
func (s *blogRepoStub) GetCached(ctx context.Context, id uint) (*models.Blog, error) {
	return s.getByIDFn(ctx, id)
}
func (s *blogRepoStub) GetByID(ctx context.Context, id uint) (*models.Blog, error) {
	return s.getByIDFn(ctx, id)
}
func (s *blogRepoStub) List(ctx context.Context, search string) ([]models.Blog, error) {
	return s.listFn(ctx, search)
}
func (s *blogRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *blogRepoStub) CountLikes(ctx context.Context, blogID uint) (int64, error) {
	return s.countLikesFn(ctx, blogID)
}
func (s *blogRepoStub) CountLikesCached(ctx context.Context, blogID uint) (int64, error) {
	return s.countLikesFn(ctx, blogID)
}
func (s *blogRepoStub) CountLikesForBlogs(ctx context.Context, blogIDs []uint) (map[uint]int64, error) {
	return s.countLikesForBlogsFn(ctx, blogIDs)
}
func (s *blogRepoStub) GetLike(ctx context.Context, userID, blogID uint) (*models.Like, error) {
	return s.getLikeFn(ctx, userID, blogID)
}
func (s *blogRepoStub) CreateLike(ctx context.Context, like *models.Like) error {
	return s.createLikeFn(ctx, like)
}
func (s *blogRepoStub) DeleteLike(ctx context.Context, userID, blogID uint) error {
	return s.deleteLikeFn(ctx, userID, blogID)
}
func (s *blogRepoStub) GetLikedBlogIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.getLikedBlogIDsFn(ctx, userID)
}
func (s *blogRepoStub) GetWishlistItem(ctx context.Context, userID, blogID uint) (*models.WishlistItem, error) {
	return s.getWishlistItemFn(ctx, userID, blogID)
}
func (s *blogRepoStub) CreateWishlistItem(ctx context.Context, item *models.WishlistItem) error {
	return s.createWishlistItemFn(ctx, item)
}
func (s *blogRepoStub) DeleteWishlistItem(ctx context.Context, userID, blogID uint) error {
	return s.deleteWishlistItemFn(ctx, userID, blogID)
}
func (s *blogRepoStub) GetWishlistedBlogIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.getWishlistedBlogsFn(ctx, userID)
}
func (s *blogRepoStub) GetWishlistBlogs(ctx context.Context, userID uint) ([]models.Blog, error) {
	return s.getWishlistBlogRowsFn(ctx, userID)
}

func noopBlogRepo() *blogRepoStub {
	return &blogRepoStub{
		createFn:             func(context.Context, *models.Blog) error { return nil },
		getByIDFn:            func(context.Context, uint) (*models.Blog, error) { return &models.Blog{}, nil },
		listFn:               func(context.Context, string) ([]models.Blog, error) { return nil, nil },
		deleteFn:             func(context.Context, uint) error { return nil },
		countLikesFn:         func(context.Context, uint) (int64, error) { return 0, nil },
		countLikesForBlogsFn: func(context.Context, []uint) (map[uint]int64, error) { return map[uint]int64{}, nil },
		getLikeFn:            func(context.Context, uint, uint) (*models.Like, error) { return nil, nil },
		createLikeFn:         func(context.Context, *models.Like) error { return nil },
		deleteLikeFn:         func(context.Context, uint, uint) error { return nil },
		getLikedBlogIDsFn:    func(context.Context, uint) ([]uint, error) { return nil, nil },
		getWishlistItemFn:    func(context.Context, uint, uint) (*models.WishlistItem, error) { return nil, nil },
		createWishlistItemFn: func(context.Context, *models.WishlistItem) error { return nil },
		deleteWishlistItemFn: func(context.Context, uint, uint) error { return nil },
		getWishlistedBlogsFn: func(context.Context, uint) ([]uint, error) { return nil, nil },
		getWishlistBlogRowsFn: func(context.Context, uint) ([]models.Blog, error) {
			return nil, nil
		},
	}
}

type tripRepoStub struct {
	createWithCreatorFn      func(context.Context, *models.Trip) error
	getByIDFn                func(context.Context, uint) (*models.Trip, error)
	listPublicFn             func(context.Context) ([]models.Trip, error)
	listByParticipantFn      func(context.Context, uint) ([]models.Trip, error)
	listEndedByParticipantFn func(context.Context, uint) ([]models.Trip, error)
	updateStatusFn           func(context.Context, uint, models.TripStatus) error
	countParticipantsFn      func(context.Context, uint) (int64, error)
	getParticipantFn         func(context.Context, uint, uint) (*models.TripParticipant, error)
	addParticipantFn         func(context.Context, *models.TripParticipant) error
	createTodoFn             func(context.Context, *models.TodoItem) error
	getTodoByIDFn            func(context.Context, uint) (*models.TodoItem, error)
	updateTodoFn             func(context.Context, *models.TodoItem) error
	deleteTodoFn             func(context.Context, uint) error
}

func (s *tripRepoStub) CreateWithCreator(ctx context.Context, trip *models.Trip) error {
	return s.createWithCreatorFn(ctx, trip)
}
func (s *tripRepoStub) GetByID(ctx context.Context, id uint) (*models.Trip, error) {
	return s.getByIDFn(ctx, id)
}
func (s *tripRepoStub) ListPublic(ctx context.Context) ([]models.Trip, error) {
	return s.listPublicFn(ctx)
}
func (s *tripRepoStub) ListByParticipant(ctx context.Context, userID uint) ([]models.Trip, error) {
	return s.listByParticipantFn(ctx, userID)
}
func (s *tripRepoStub) ListEndedByParticipant(ctx context.Context, userID uint) ([]models.Trip, error) {
	return s.listEndedByParticipantFn(ctx, userID)
}
func (s *tripRepoStub) UpdateStatus(ctx context.Context, tripID uint, status models.TripStatus) error {
	return s.updateStatusFn(ctx, tripID, status)
}
func (s *tripRepoStub) CountParticipants(ctx context.Context, tripID uint) (int64, error) {
	return s.countParticipantsFn(ctx, tripID)
}
func (s *tripRepoStub) GetParticipant(ctx context.Context, tripID, userID uint) (*models.TripParticipant, error) {
	return s.getParticipantFn(ctx, tripID, userID)
}
func (s *tripRepoStub) AddParticipant(ctx context.Context, participant *models.TripParticipant) error {
	return s.addParticipantFn(ctx, participant)
}
func (s *tripRepoStub) CreateTodo(ctx context.Context, todo *models.TodoItem) error {
	return s.createTodoFn(ctx, todo)
}
func (s *tripRepoStub) GetTodoByID(ctx context.Context, id uint) (*models.TodoItem, error) {
	return s.getTodoByIDFn(ctx, id)
}
func (s *tripRepoStub) UpdateTodo(ctx context.Context, todo *models.TodoItem) error {
	return s.updateTodoFn(ctx, todo)
}
func (s *tripRepoStub) DeleteTodo(ctx context.Context, id uint) error {
	return s.deleteTodoFn(ctx, id)
}

func noopTripRepo() *tripRepoStub {
	return &tripRepoStub{
		createWithCreatorFn:      func(context.Context, *models.Trip) error { return nil },
		getByIDFn:                func(context.Context, uint) (*models.Trip, error) { return &models.Trip{}, nil },
		listPublicFn:             func(context.Context) ([]models.Trip, error) { return nil, nil },
		listByParticipantFn:      func(context.Context, uint) ([]models.Trip, error) { return nil, nil },
		listEndedByParticipantFn: func(context.Context, uint) ([]models.Trip, error) { return nil, nil },
		updateStatusFn:           func(context.Context, uint, models.TripStatus) error { return nil },
		countParticipantsFn:      func(context.Context, uint) (int64, error) { return 0, nil },
		getParticipantFn: func(context.Context, uint, uint) (*models.TripParticipant, error) {
			return &models.TripParticipant{}, nil
		},
		addParticipantFn: func(context.Context, *models.TripParticipant) error { return nil },
		createTodoFn:     func(context.Context, *models.TodoItem) error { return nil },
		getTodoByIDFn:    func(context.Context, uint) (*models.TodoItem, error) { return &models.TodoItem{}, nil },
		updateTodoFn:     func(context.Context, *models.TodoItem) error { return nil },
		deleteTodoFn:     func(context.Context, uint) error { return nil },
	}
}

type reviewRepoStub struct {
	upsertTripReviewFn  func(context.Context, *models.TripReview) error
	upsertBuddyReviewFn func(context.Context, *models.BuddyReview) error
	getTripReviewFn     func(context.Context, uint, uint) (*models.TripReview, error)
	listBuddyReviewsFn  func(context.Context, uint, uint) ([]models.BuddyReview, error)
}

func (s *reviewRepoStub) UpsertTripReview(ctx context.Context, review *models.TripReview) error {
	return s.upsertTripReviewFn(ctx, review)
}
func (s *reviewRepoStub) UpsertBuddyReview(ctx context.Context, review *models.BuddyReview) error {
	return s.upsertBuddyReviewFn(ctx, review)
}
func (s *reviewRepoStub) GetTripReview(ctx context.Context, tripID, reviewerID uint) (*models.TripReview, error) {
	return s.getTripReviewFn(ctx, tripID, reviewerID)
}
func (s *reviewRepoStub) ListBuddyReviews(ctx context.Context, tripID, reviewerID uint) ([]models.BuddyReview, error) {
	return s.listBuddyReviewsFn(ctx, tripID, reviewerID)
}

func noopReviewRepo() *reviewRepoStub {
	return &reviewRepoStub{
		upsertTripReviewFn:  func(context.Context, *models.TripReview) error { return nil },
		upsertBuddyReviewFn: func(context.Context, *models.BuddyReview) error { return nil },
		getTripReviewFn:     func(context.Context, uint, uint) (*models.TripReview, error) { return nil, nil },
		listBuddyReviewsFn:  func(context.Context, uint, uint) ([]models.BuddyReview, error) { return nil, nil },
	}
}

type chatRepoStub struct {
	createChatFn     func(context.Context, *models.Chat, []uint) error
	getByIDFn        func(context.Context, uint) (*models.Chat, error)
	findDirectChatFn func(context.Context, uint, uint) (*models.Chat, error)
	listByUserFn     func(context.Context, uint) ([]models.Chat, error)
	isMemberFn       func(context.Context, uint, uint) (bool, error)
	createMessageFn  func(context.Context, *models.Message) error
	listMessagesFn   func(context.Context, uint, *time.Time, int) ([]models.Message, error)
}

func (s *chatRepoStub) CreateChat(ctx context.Context, chat *models.Chat, memberIDs []uint) error {
	return s.createChatFn(ctx, chat, memberIDs)
}
func (s *chatRepoStub) GetByID(ctx context.Context, id uint) (*models.Chat, error) {
	return s.getByIDFn(ctx, id)
}
func (s *chatRepoStub) FindDirectChat(ctx context.Context, userID1, userID2 uint) (*models.Chat, error) {
	return s.findDirectChatFn(ctx, userID1, userID2)
}
func (s *chatRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.Chat, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *chatRepoStub) IsMember(ctx context.Context, chatID, userID uint) (bool, error) {
	return s.isMemberFn(ctx, chatID, userID)
}
func (s *chatRepoStub) CreateMessage(ctx context.Context, message *models.Message) error {
	return s.createMessageFn(ctx, message)
}
func (s *chatRepoStub) ListMessages(ctx context.Context, chatID uint, after *time.Time, limit int) ([]models.Message, error) {
	return s.listMessagesFn(ctx, chatID, after, limit)
}

func noopChatRepo() *chatRepoStub {
	return &chatRepoStub{
		createChatFn:     func(context.Context, *models.Chat, []uint) error { return nil },
		getByIDFn:        func(context.Context, uint) (*models.Chat, error) { return &models.Chat{}, nil },
		findDirectChatFn: func(context.Context, uint, uint) (*models.Chat, error) { return nil, nil },
		listByUserFn:     func(context.Context, uint) ([]models.Chat, error) { return nil, nil },
		isMemberFn:       func(context.Context, uint, uint) (bool, error) { return true, nil },
		createMessageFn:  func(context.Context, *models.Message) error { return nil },
		listMessagesFn:   func(context.Context, uint, *time.Time, int) ([]models.Message, error) { return nil, nil },
	}
}
