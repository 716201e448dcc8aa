package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/safebite/safebite/internal/database/models"
	"github.com/safebite/safebite/internal/database/types"
	"github.com/safebite/safebite/internal/database/types/enum"
	"github.com/safebite/safebite/internal/outbox"
	"github.com/safebite/safebite/internal/ratelimit"
	"github.com/safebite/safebite/internal/setup/config"
	"go.uber.org/zap"
)

// VoteService is the synchronous write path for votes. It validates and
// admits a cast, commits the vote row, and enqueues the asynchronous
// follow-up work. Aggregates, reputation and notifications all happen in
// workers, never inline.
type VoteService struct {
	votes     *models.VoteModel
	items     *models.ItemModel
	snapshots *models.SnapshotModel
	limiter   *ratelimit.Limiter
	queue     *outbox.Queue
	validate  *validator.Validate
	cfg       *config.Vote
	clock     clockwork.Clock
	logger    *zap.Logger
}

// NewVote creates a new vote service.
func NewVote(
	votes *models.VoteModel,
	items *models.ItemModel,
	snapshots *models.SnapshotModel,
	limiter *ratelimit.Limiter,
	queue *outbox.Queue,
	cfg *config.Vote,
	clock clockwork.Clock,
	logger *zap.Logger,
) *VoteService {
	return &VoteService{
		votes:     votes,
		items:     items,
		snapshots: snapshots,
		limiter:   limiter,
		queue:     queue,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		cfg:       cfg,
		clock:     clock,
		logger:    logger.Named("vote_service"),
	}
}

// CastVote stores a voter's rating of an item. Re-casting on the same item
// overwrites the previous vote in place and is reported as an edit so
// downstream consumers skip one-time rewards.
func (s *VoteService) CastVote(ctx context.Context, req *types.CastVoteRequest) (*types.CastVoteResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrValidation, err)
	}

	voterKey, err := req.Voter.Key()
	if err != nil {
		return nil, err
	}

	decision, err := s.limiter.Admit(ctx, voterKey, enum.ActionTypeVoteCast)
	if err != nil {
		return nil, err
	}
	if !decision.OK {
		return nil, &ratelimit.RateLimitedError{
			Action:     enum.ActionTypeVoteCast,
			RetryAfter: decision.RetryAfter,
		}
	}

	item, err := s.items.GetItem(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	// Checked before the upsert so this cast itself does not mask the
	// first-vote signal.
	hadVotes, err := s.votes.HasVotes(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	vote := &types.Vote{
		ID:          uuid.New(),
		ItemID:      item.ID,
		VoterKey:    voterKey,
		UserID:      req.Voter.UserID,
		AnonymousID: req.Voter.AnonymousID,
		Kind:        req.Voter.Kind(),
		Safety:      req.Safety,
		Taste:       req.Taste,
		Price:       req.Price,
		StoreTag:    req.StoreTag,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	voteID, isEdit, err := s.votes.UpsertVote(ctx, vote)
	if err != nil {
		return nil, err
	}

	if s.cfg.PriceSnapshotEnabled && req.Price != nil {
		snapshot := &types.PriceSnapshot{
			ItemID:     item.ID,
			StoreTag:   req.StoreTag,
			Price:      *req.Price,
			ObservedAt: now,
		}
		if err := s.snapshots.InsertSnapshot(ctx, snapshot); err != nil {
			// History is best-effort; the vote itself already committed.
			s.logger.Warn("Failed to record price snapshot",
				zap.Uint64("itemID", item.ID),
				zap.Error(err))
		}
	}

	s.enqueueFollowUps(ctx, item, req, isEdit, !hadVotes)

	s.logger.Debug("Vote cast",
		zap.Uint64("itemID", item.ID),
		zap.String("voterKey", voterKey),
		zap.Bool("isEdit", isEdit))

	return &types.CastVoteResult{VoteID: voteID, IsEdit: isEdit}, nil
}

// DeleteVote removes a vote and schedules the item's aggregate to be
// rebuilt without it. Requesters may only delete their own vote unless
// they act as a moderator.
func (s *VoteService) DeleteVote(
	ctx context.Context, voteID uuid.UUID, requester types.VoterIdentity, asModerator bool,
) error {
	requesterKey, err := requester.Key()
	if err != nil {
		return err
	}

	decision, err := s.limiter.Admit(ctx, requesterKey, enum.ActionTypeItemMutation)
	if err != nil {
		return err
	}
	if !decision.OK {
		return &ratelimit.RateLimitedError{
			Action:     enum.ActionTypeItemMutation,
			RetryAfter: decision.RetryAfter,
		}
	}

	vote, err := s.votes.GetVote(ctx, voteID)
	if err != nil {
		return err
	}

	if !asModerator && vote.VoterKey != requesterKey {
		return fmt.Errorf("%w: %s", types.ErrVoteNotOwner, voteID)
	}

	if err := s.votes.DeleteVote(ctx, voteID); err != nil {
		return err
	}

	s.enqueueRecompute(ctx, vote.ItemID)

	return nil
}

// MigrateAnonymousVotes re-owns an anonymous voter's votes to a newly
// authenticated user and schedules recomputes for every touched item, so
// the weight change from anonymous to registered is reflected. Idempotent.
// Returns how many votes were re-owned.
func (s *VoteService) MigrateAnonymousVotes(ctx context.Context, anonymousID string, userID uint64) (int64, error) {
	if anonymousID == "" || userID == 0 {
		return 0, types.ErrNoVoterIdentity
	}

	// Collected before the migration because afterwards nothing matches
	// the anonymous key anymore.
	itemIDs, err := s.votes.ItemIDsByVoterKey(ctx, "a:"+anonymousID)
	if err != nil {
		return 0, err
	}

	migrated, err := s.votes.MigrateAnonymousVotes(ctx, anonymousID, userID)
	if err != nil {
		return 0, err
	}

	for _, itemID := range itemIDs {
		s.enqueueRecompute(ctx, itemID)
	}

	s.logger.Info("Migrated anonymous votes",
		zap.Uint64("userID", userID),
		zap.Int64("migrated", migrated),
		zap.Int("itemsTouched", len(itemIDs)))

	return migrated, nil
}

// enqueueFollowUps schedules the asynchronous work a committed cast fans
// out into. Enqueue failures are logged, not returned: the vote already
// committed, and the nightly catalog sweep repairs any aggregate a lost
// recompute job would have produced.
func (s *VoteService) enqueueFollowUps(
	ctx context.Context, item *types.Item, req *types.CastVoteRequest, isEdit bool, firstVote bool,
) {
	s.enqueueRecompute(ctx, item.ID)

	if req.Voter.UserID != 0 {
		s.enqueueJob(ctx, enum.JobTypeReputationUpdate, outbox.ReputationUpdatePayload{
			UserID: req.Voter.UserID,
			Event: types.VoteEvent{
				HasPrice:  req.Price != nil,
				HasStore:  req.StoreTag != "",
				HasGPS:    req.Latitude != nil && req.Longitude != nil,
				IsNewItem: firstVote && !isEdit,
				IsEdit:    isEdit,
			},
		})
	}

	if firstVote && !isEdit && item.Latitude != nil && item.Longitude != nil {
		s.enqueueJob(ctx, enum.JobTypeNotifyNearby, outbox.NotifyNearbyPayload{
			ItemID:    item.ID,
			ItemName:  item.Name,
			Latitude:  *item.Latitude,
			Longitude: *item.Longitude,
			CreatorID: item.CreatorID,
		})
	}
}

func (s *VoteService) enqueueRecompute(ctx context.Context, itemID uint64) {
	s.enqueueJob(ctx, enum.JobTypeRecomputeItem, outbox.RecomputeItemPayload{ItemID: itemID})
}

func (s *VoteService) enqueueJob(ctx context.Context, jobType enum.JobType, payload any) {
	job, err := outbox.NewJob(jobType, payload)
	if err == nil {
		err = s.queue.Enqueue(ctx, job)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("Failed to enqueue job",
			zap.String("type", jobType.String()),
			zap.Error(err))
	}
}
