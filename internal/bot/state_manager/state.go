package state_manager

import (
	"context"
	"fmt"
	"slices"

	"cleanbook/internal/storage/redis"
)

type UserDialogStateManager struct {
	redisStorage RedisStorage
}

func New(redisStorage RedisStorage) *UserDialogStateManager {
	return &UserDialogStateManager{redisStorage: redisStorage}
}

func (u *UserDialogStateManager) GetUserDialogState(ctx context.Context, chatID int64) (*redis.UserState, error) {
	state, err := u.redisStorage.GetUserDialogState(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("redisStorage.GetUserDialogState failed: %w", err)
	}
	return state, nil
}

func (u *UserDialogStateManager) setUserDialogState(ctx context.Context, chatID int64, state *redis.UserState) error {
	if err := u.redisStorage.SetUserDialogState(ctx, chatID, state); err != nil {
		return fmt.Errorf("redisStorage.SetUserDialogState failed: %w", err)
	}
	return nil
}

// updateBooking loads the state, applies fn to its booking (creating one
// if needed) and saves the result.
func (u *UserDialogStateManager) updateBooking(ctx context.Context, chatID int64, fn func(*redis.Booking)) (*redis.UserState, error) {
	state, err := u.GetUserDialogState(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("GetUserDialogState failed: %w", err)
	}

	if state.Booking == nil {
		state.Booking = &redis.Booking{}
	}
	fn(state.Booking)

	if err := u.setUserDialogState(ctx, chatID, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (u *UserDialogStateManager) SetStep(ctx context.Context, chatID int64, step string) error {
	state, err := u.GetUserDialogState(ctx, chatID)
	if err != nil {
		return fmt.Errorf("GetUserDialogState failed: %w", err)
	}

	state.Step = step

	return u.setUserDialogState(ctx, chatID, state)
}

// StartBooking discards any previous wizard input and moves the chat to step.
func (u *UserDialogStateManager) StartBooking(ctx context.Context, chatID int64, step string) error {
	return u.setUserDialogState(ctx, chatID, &redis.UserState{
		Step:    step,
		Booking: &redis.Booking{},
	})
}

// SetSpace records the home and forgets the frequency and the quote
// message, so a new frequency must be chosen before the next quote.
func (u *UserDialogStateManager) SetSpace(ctx context.Context, chatID int64, space redis.Space) error {
	_, err := u.updateBooking(ctx, chatID, func(b *redis.Booking) {
		b.Space = &space
		b.Frequency = ""
		b.QuoteMessageID = 0
	})
	return err
}

func (u *UserDialogStateManager) SetFrequency(ctx context.Context, chatID int64, frequency string) error {
	_, err := u.updateBooking(ctx, chatID, func(b *redis.Booking) {
		b.Frequency = frequency
	})
	return err
}

// ToggleAddOn adds id to the selection, or removes it if already selected,
// and returns the resulting booking.
func (u *UserDialogStateManager) ToggleAddOn(ctx context.Context, chatID int64, id string) (*redis.Booking, error) {
	state, err := u.updateBooking(ctx, chatID, func(b *redis.Booking) {
		if i := slices.Index(b.AddOns, id); i >= 0 {
			b.AddOns = slices.Delete(b.AddOns, i, i+1)
			return
		}
		b.AddOns = append(b.AddOns, id)
	})
	if err != nil {
		return nil, err
	}
	return state.Booking, nil
}

func (u *UserDialogStateManager) SetQuoteMessage(ctx context.Context, chatID int64, messageID int) error {
	_, err := u.updateBooking(ctx, chatID, func(b *redis.Booking) {
		b.QuoteMessageID = messageID
	})
	return err
}

func (u *UserDialogStateManager) ClearState(ctx context.Context, chatID int64) error {
	if err := u.redisStorage.DropUserDialogState(ctx, chatID); err != nil {
		return fmt.Errorf("redisStorage.DropUserDialogState failed: %w", err)
	}
	return nil
}
