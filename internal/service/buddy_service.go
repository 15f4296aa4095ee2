package service

import (
	"context"
	"sort"

	"travelbuddy/internal/cache"
	"travelbuddy/internal/models"
	"travelbuddy/internal/observability"
	"travelbuddy/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// BuddyService provides buddy-request and matchmaking business logic.
type BuddyService struct {
	buddyRepo repository.BuddyRepository
	userRepo  repository.UserRepository
	blogRepo  repository.BlogRepository
}

// NewBuddyService returns a new BuddyService.
func NewBuddyService(buddyRepo repository.BuddyRepository, userRepo repository.UserRepository, blogRepo repository.BlogRepository) *BuddyService {
	return &BuddyService{
		buddyRepo: buddyRepo,
		userRepo:  userRepo,
		blogRepo:  blogRepo,
	}
}

// SendRequest sends a buddy request to the target user.
func (s *BuddyService) SendRequest(ctx context.Context, userID, receiverID uint) (*models.BuddyRequest, error) {
	if userID == receiverID {
		return nil, models.NewValidationError("Cannot send a buddy request to yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		return nil, err
	}

	existing, err := s.buddyRepo.GetRequestBetweenUsers(ctx, userID, receiverID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case models.BuddyRequestStatusAccepted:
			return nil, models.NewConflictError("You are already buddies")
		case models.BuddyRequestStatusPending:
			if existing.RequesterID == userID {
				return nil, models.NewConflictError("Buddy request already sent")
			}
			return nil, models.NewConflictError("You already have a pending buddy request from this user")
		case models.BuddyRequestStatusRejected:
			// The pair shares a unique index, so the rejected row has to go
			// before a new request can be created.
			if err := s.buddyRepo.Delete(ctx, existing.ID); err != nil {
				return nil, err
			}
		}
	}

	request := &models.BuddyRequest{
		RequesterID: userID,
		ReceiverID:  receiverID,
		Status:      models.BuddyRequestStatusPending,
	}
	if err := s.buddyRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	return s.buddyRepo.GetByID(ctx, request.ID)
}

// PendingRequests bundles incoming and outgoing pending buddy requests.
type PendingRequests struct {
	Incoming []models.BuddyRequest `json:"incoming"`
	Outgoing []models.BuddyRequest `json:"outgoing"`
}

// GetPendingRequests returns pending buddy requests involving the user.
func (s *BuddyService) GetPendingRequests(ctx context.Context, userID uint) (*PendingRequests, error) {
	incoming, err := s.buddyRepo.GetPendingIncoming(ctx, userID)
	if err != nil {
		return nil, err
	}
	outgoing, err := s.buddyRepo.GetPendingOutgoing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &PendingRequests{Incoming: incoming, Outgoing: outgoing}, nil
}

// AcceptRequest accepts a pending buddy request. Receiver only.
func (s *BuddyService) AcceptRequest(ctx context.Context, userID, requestID uint) (*models.BuddyRequest, error) {
	request, err := s.buddyRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.ReceiverID != userID {
		return nil, models.NewForbiddenError("You can only accept buddy requests sent to you")
	}
	if request.Status != models.BuddyRequestStatusPending {
		return nil, models.NewConflictError("Buddy request is not pending")
	}

	if err := s.buddyRepo.UpdateStatus(ctx, requestID, models.BuddyRequestStatusAccepted); err != nil {
		return nil, err
	}

	return s.buddyRepo.GetByID(ctx, requestID)
}

// DeclineRequest declines a pending buddy request. Receiver only.
func (s *BuddyService) DeclineRequest(ctx context.Context, userID, requestID uint) (*models.BuddyRequest, error) {
	request, err := s.buddyRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.ReceiverID != userID {
		return nil, models.NewForbiddenError("You can only decline buddy requests sent to you")
	}
	if request.Status != models.BuddyRequestStatusPending {
		return nil, models.NewConflictError("Buddy request is not pending")
	}

	if err := s.buddyRepo.UpdateStatus(ctx, requestID, models.BuddyRequestStatusRejected); err != nil {
		return nil, err
	}

	return s.buddyRepo.GetByID(ctx, requestID)
}

// CancelRequest removes a pending buddy request. Requester only.
func (s *BuddyService) CancelRequest(ctx context.Context, userID, requestID uint) (*models.BuddyRequest, error) {
	request, err := s.buddyRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.RequesterID != userID {
		return nil, models.NewForbiddenError("You can only cancel buddy requests you sent")
	}
	if request.Status != models.BuddyRequestStatusPending {
		return nil, models.NewConflictError("Buddy request is not pending")
	}

	if err := s.buddyRepo.Delete(ctx, requestID); err != nil {
		return nil, err
	}

	return request, nil
}

// GetBuddies returns the user's accepted buddies.
func (s *BuddyService) GetBuddies(ctx context.Context, userID uint) ([]models.User, error) {
	return s.buddyRepo.GetBuddies(ctx, userID)
}

// BuddyMatch is one matchmaking result.
type BuddyMatch struct {
	ID              uint     `json:"id"`
	Name            string   `json:"name"`
	Avatar          string   `json:"avatar"`
	Location        string   `json:"location"`
	TripsCompleted  int64    `json:"trips_completed"`
	Interests       []string `json:"interests"`
	CommonInterests int      `json:"common_interests"`
}

// Matchmaking scores candidate buddies by overlap of engaged blogs.
// A user's interest set is the union of the blogs they liked and
// wishlisted; candidates with no overlap are dropped. An empty interest
// set yields an empty result, there is no fallback ranking.
//
// Results sit behind a cache-aside read. Like and wishlist mutations drop
// the user's entry, so the scan reruns after the interest set changes.
func (s *BuddyService) Matchmaking(ctx context.Context, userID uint) ([]BuddyMatch, error) {
	var matches []BuddyMatch
	err := cache.Aside(ctx, cache.MatchmakingKey(userID), &matches, cache.MatchmakingTTL, func() error {
		fresh, err := s.computeMatches(ctx, userID)
		if err != nil {
			return err
		}
		matches = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (s *BuddyService) computeMatches(ctx context.Context, userID uint) ([]BuddyMatch, error) {
	span, ctx := observability.NewSpan(ctx, "buddy.matchmaking")
	defer span.End()

	interests, err := s.interestSet(ctx, userID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	if len(interests) == 0 {
		observability.MatchmakingRuns.WithLabelValues("empty_interests").Inc()
		return []BuddyMatch{}, nil
	}

	buddyIDs, err := s.buddyRepo.GetBuddyIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	excluded := map[uint]bool{userID: true}
	for _, id := range buddyIDs {
		excluded[id] = true
	}

	candidates, err := s.userRepo.ListCustomers(ctx, repository.CustomerFilter{})
	if err != nil {
		return nil, err
	}

	matches := make([]BuddyMatch, 0)
	for _, candidate := range candidates {
		if excluded[candidate.ID] {
			continue
		}
		observability.MatchmakingCandidatesScanned.Inc()

		candidateInterests, err := s.interestSet(ctx, candidate.ID)
		if err != nil {
			return nil, err
		}

		common := 0
		for id := range candidateInterests {
			if interests[id] {
				common++
			}
		}
		if common == 0 {
			continue
		}

		tripsCompleted, err := s.userRepo.CountTripsCompleted(ctx, candidate.ID)
		if err != nil {
			return nil, err
		}

		matches = append(matches, BuddyMatch{
			ID:              candidate.ID,
			Name:            candidate.Name,
			Avatar:          candidate.Avatar,
			Location:        candidate.Location,
			TripsCompleted:  tripsCompleted,
			Interests:       candidate.InterestList(),
			CommonInterests: common,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CommonInterests > matches[j].CommonInterests
	})

	span.AddAttributes(
		attribute.Int("matchmaking.interest_count", len(interests)),
		attribute.Int("matchmaking.match_count", len(matches)),
	)
	observability.MatchmakingRuns.WithLabelValues("ok").Inc()
	return matches, nil
}

func (s *BuddyService) interestSet(ctx context.Context, userID uint) (map[uint]bool, error) {
	liked, err := s.blogRepo.GetLikedBlogIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	wishlisted, err := s.blogRepo.GetWishlistedBlogIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	set := make(map[uint]bool, len(liked)+len(wishlisted))
	for _, id := range liked {
		set[id] = true
	}
	for _, id := range wishlisted {
		set[id] = true
	}
	return set, nil
}
