package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/tasksphere/core/internal/domain/entities"
	"github.com/tasksphere/core/internal/infrastructure/logger"
	"github.com/tasksphere/core/internal/ports"
)

func newRewardServiceFixture() (*RewardService, *fakeRewardRepo, *fakeUserRepo) {
	users := newFakeUserRepo()
	rewards := newFakeRewardRepo(users)
	svc := NewRewardService(rewards, logger.NewNop())
	return svc, rewards, users
}

func seedUserWithPoints(t *testing.T, users *fakeUserRepo, points int) *entities.User {
	t.Helper()
	user := &entities.User{
		ID:           uuid.New(),
		Name:         "Spender",
		Email:        "spender@example.com",
		Role:         entities.UserRoleUser,
		RewardPoints: points,
		Rating:       1,
	}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestClaimRewardDeductsBalance(t *testing.T) {
	svc, _, users := newRewardServiceFixture()
	ctx := context.Background()
	user := seedUserWithPoints(t, users, 100)

	claim, err := svc.ClaimReward(ctx, user.ID, ports.ClaimRewardRequest{
		RewardID:   "coffee-voucher",
		RewardName: "Coffee Voucher",
		Cost:       100,
	})
	if err != nil {
		t.Fatalf("ClaimReward: %v", err)
	}
	if claim.Status != entities.ClaimStatusPending {
		t.Fatalf("claim status = %s, want pending", claim.Status)
	}
	if claim.ID == 0 {
		t.Fatal("claim ID not assigned")
	}

	got, _ := users.GetByID(ctx, user.ID)
	if got.RewardPoints != 0 {
		t.Fatalf("balance = %d, want 0", got.RewardPoints)
	}
}

func TestClaimRewardInsufficientBalance(t *testing.T) {
	svc, rewards, users := newRewardServiceFixture()
	ctx := context.Background()
	user := seedUserWithPoints(t, users, 40)

	_, err := svc.ClaimReward(ctx, user.ID, ports.ClaimRewardRequest{
		RewardID:   "day-off",
		RewardName: "Extra Day Off",
		Cost:       41,
	})
	if !errors.Is(err, entities.ErrInsufficientPoints) {
		t.Fatalf("expected ErrInsufficientPoints, got %v", err)
	}

	got, _ := users.GetByID(ctx, user.ID)
	if got.RewardPoints != 40 {
		t.Fatalf("balance changed on failed claim: %d", got.RewardPoints)
	}

	claims, _ := rewards.GetUserClaims(ctx, user.ID)
	if len(claims) != 0 {
		t.Fatalf("failed claim was recorded: %+v", claims)
	}
}

func TestClaimRewardExactBalanceThenEmpty(t *testing.T) {
	svc, _, users := newRewardServiceFixture()
	ctx := context.Background()
	user := seedUserWithPoints(t, users, 50)

	if _, err := svc.ClaimReward(ctx, user.ID, ports.ClaimRewardRequest{
		RewardID:   "sticker",
		RewardName: "Sticker Pack",
		Cost:       50,
	}); err != nil {
		t.Fatalf("ClaimReward: %v", err)
	}

	_, err := svc.ClaimReward(ctx, user.ID, ports.ClaimRewardRequest{
		RewardID:   "sticker",
		RewardName: "Sticker Pack",
		Cost:       1,
	})
	if !errors.Is(err, entities.ErrInsufficientPoints) {
		t.Fatalf("expected ErrInsufficientPoints on drained balance, got %v", err)
	}
}

func TestClaimRewardInvalidCost(t *testing.T) {
	svc, _, users := newRewardServiceFixture()
	ctx := context.Background()
	user := seedUserWithPoints(t, users, 100)

	for _, cost := range []int{0, -5} {
		_, err := svc.ClaimReward(ctx, user.ID, ports.ClaimRewardRequest{
			RewardID:   "bogus",
			RewardName: "Bogus",
			Cost:       cost,
		})
		if !errors.Is(err, entities.ErrInvalidCost) {
			t.Fatalf("cost %d: expected ErrInvalidCost, got %v", cost, err)
		}
	}

	got, _ := users.GetByID(ctx, user.ID)
	if got.RewardPoints != 100 {
		t.Fatalf("balance changed on invalid cost: %d", got.RewardPoints)
	}
}

func TestClaimRewardUnknownUser(t *testing.T) {
	svc, _, _ := newRewardServiceFixture()

	_, err := svc.ClaimReward(context.Background(), uuid.New(), ports.ClaimRewardRequest{
		RewardID:   "coffee-voucher",
		RewardName: "Coffee Voucher",
		Cost:       10,
	})
	if !errors.Is(err, entities.ErrInsufficientPoints) {
		t.Fatalf("expected ErrInsufficientPoints, got %v", err)
	}
}

func TestConcurrentClaimsNoDoubleSpend(t *testing.T) {
	svc, rewards, users := newRewardServiceFixture()
	ctx := context.Background()
	user := seedUserWithPoints(t, users, 100)

	const workers = 2
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.ClaimReward(ctx, user.ID, ports.ClaimRewardRequest{
				RewardID:   "headphones",
				RewardName: "Headphones",
				Cost:       60,
			})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else if !errors.Is(err, entities.ErrInsufficientPoints) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("%d claims succeeded against a balance covering one, want 1", successes)
	}

	got, _ := users.GetByID(ctx, user.ID)
	if got.RewardPoints != 40 {
		t.Fatalf("balance = %d, want 40", got.RewardPoints)
	}

	claims, _ := rewards.GetUserClaims(ctx, user.ID)
	if len(claims) != 1 {
		t.Fatalf("ledger has %d claims, want 1", len(claims))
	}
}

func TestGetClaimedRewards(t *testing.T) {
	svc, _, users := newRewardServiceFixture()
	ctx := context.Background()
	user := seedUserWithPoints(t, users, 100)
	other := seedUserWithPoints(t, users, 100)

	for _, id := range []string{"a", "b"} {
		if _, err := svc.ClaimReward(ctx, user.ID, ports.ClaimRewardRequest{
			RewardID:   id,
			RewardName: "Item " + id,
			Cost:       10,
		}); err != nil {
			t.Fatalf("ClaimReward: %v", err)
		}
	}
	if _, err := svc.ClaimReward(ctx, other.ID, ports.ClaimRewardRequest{
		RewardID:   "c",
		RewardName: "Item c",
		Cost:       10,
	}); err != nil {
		t.Fatalf("ClaimReward: %v", err)
	}

	claims, err := svc.GetClaimedRewards(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetClaimedRewards: %v", err)
	}
	if len(claims) != 2 {
		t.Fatalf("got %d claims, want 2", len(claims))
	}
	for _, claim := range claims {
		if claim.UserID != user.ID {
			t.Fatalf("claim for wrong user: %+v", claim)
		}
	}
}
