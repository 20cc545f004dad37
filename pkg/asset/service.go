package asset

import (
	"context"
	"fmt"
	"sync"

	"github.com/Sternrassler/chute-client/pkg/client"
	"github.com/Sternrassler/chute-client/pkg/heart"
	"github.com/Sternrassler/chute-client/pkg/logging"
	"github.com/Sternrassler/chute-client/pkg/receipt"
	"github.com/Sternrassler/chute-client/pkg/resource"
	"github.com/rs/zerolog"
)

// State is the local heart state of an asset.
type State int

const (
	// StateNotLiked means no receipt is stored.
	StateNotLiked State = iota

	// StateLiked means a receipt is stored.
	StateLiked
)

// String implements fmt.Stringer.
func (s State) String() string {
	if s == StateLiked {
		return "liked"
	}
	return "not liked"
}

// Service lists and fetches assets and toggles hearts. The heart state is
// local: a receipt in the store means the asset is hearted, and it is never
// reconciled with the server.
type Service struct {
	*resource.Resource[Asset]

	hearts   *heart.Service
	receipts receipt.Store
	logger   zerolog.Logger

	// serializes check, request and store for one key
	locks sync.Map
}

// NewService creates an asset service using receipts for heart state.
func NewService(c *client.Client, receipts receipt.Store) *Service {
	if receipts == nil {
		panic("receipt store cannot be nil")
	}
	return &Service{
		Resource: NewResource(c),
		hearts:   heart.NewService(c),
		receipts: receipts,
		logger:   logging.NewLogger(logging.ComponentAsset),
	}
}

// ReceiptKey returns the receipt key of a.
func ReceiptKey(a *Asset) receipt.Key {
	return receipt.Key{Album: a.Album, Asset: a.Shortcut}
}

func (s *Service) lock(key receipt.Key) func() {
	v, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Hearted reports whether a receipt exists for a.
func (s *Service) Hearted(ctx context.Context, a *Asset) (bool, error) {
	_, ok, err := s.receipts.Get(ctx, ReceiptKey(a))
	if err != nil {
		return false, fmt.Errorf("read receipt: %w", err)
	}
	return ok, nil
}

// State returns the local heart state of a.
func (s *Service) State(ctx context.Context, a *Asset) (State, error) {
	ok, err := s.Hearted(ctx, a)
	if err != nil || !ok {
		return StateNotLiked, err
	}
	return StateLiked, nil
}

// Heart creates a heart on a, stores its receipt and increments a.Hearts.
// It fails with a *PreconditionError, without a request, when a is already
// hearted. If the receipt cannot be stored the created heart is returned
// together with the error.
func (s *Service) Heart(ctx context.Context, a *Asset) (*heart.Heart, error) {
	key := ReceiptKey(a)
	if err := key.Validate(); err != nil {
		return nil, err
	}
	defer s.lock(key)()

	_, ok, err := s.receipts.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read receipt: %w", err)
	}
	if ok {
		HeartsRejected.WithLabelValues("heart").Inc()
		return nil, &PreconditionError{Key: key, Err: ErrAlreadyHearted}
	}

	h, err := s.hearts.Create(ctx, a.Album, a.Shortcut)
	if err != nil {
		return nil, err
	}

	a.Hearts++
	HeartsTotal.WithLabelValues("heart").Inc()

	if err := s.receipts.Set(ctx, key, h.Identifier); err != nil {
		s.logger.Error().Err(err).Str("key", key.String()).Msg("Failed to store heart receipt")
		return h, fmt.Errorf("store receipt: %w", err)
	}

	s.logger.Debug().Str("key", key.String()).Str("identifier", h.Identifier).Msg("Asset hearted")
	return h, nil
}

// Unheart removes the heart on a, drops its receipt and decrements a.Hearts.
// It fails with a *PreconditionError, without a request, when a is not
// hearted.
func (s *Service) Unheart(ctx context.Context, a *Asset) error {
	key := ReceiptKey(a)
	if err := key.Validate(); err != nil {
		return err
	}
	defer s.lock(key)()

	id, ok, err := s.receipts.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("read receipt: %w", err)
	}
	if !ok {
		HeartsRejected.WithLabelValues("unheart").Inc()
		return &PreconditionError{Key: key, Err: ErrNotHearted}
	}

	if err := s.hearts.Remove(ctx, id); err != nil {
		return err
	}

	a.Hearts--
	HeartsTotal.WithLabelValues("unheart").Inc()

	if err := s.receipts.Remove(ctx, key); err != nil {
		s.logger.Error().Err(err).Str("key", key.String()).Msg("Failed to remove heart receipt")
		return fmt.Errorf("remove receipt: %w", err)
	}

	s.logger.Debug().Str("key", key.String()).Msg("Asset unhearted")
	return nil
}

// ToggleHeart unhearts a hearted asset and hearts any other. It returns the
// resulting state.
func (s *Service) ToggleHeart(ctx context.Context, a *Asset) (State, error) {
	hearted, err := s.Hearted(ctx, a)
	if err != nil {
		return StateNotLiked, err
	}
	if hearted {
		if err := s.Unheart(ctx, a); err != nil {
			return StateLiked, err
		}
		return StateNotLiked, nil
	}
	if _, err := s.Heart(ctx, a); err != nil {
		return StateNotLiked, err
	}
	return StateLiked, nil
}
