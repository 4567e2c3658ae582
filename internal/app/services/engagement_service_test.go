package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/studysphere/backend/internal/app/models"
	"github.com/studysphere/backend/internal/app/repositories"
	"github.com/studysphere/backend/internal/pkg/apperrors"
)

type engagementKey struct {
	resourceID int64
	userID     int64
	kind       models.EngagementKind
}

// fakeEngagementStore keeps memberships in a map, mirroring the unique
// constraint on the real table.
type fakeEngagementStore struct {
	rows map[engagementKey]bool
}

func newFakeEngagementStore() *fakeEngagementStore {
	return &fakeEngagementStore{rows: make(map[engagementKey]bool)}
}

func (f *fakeEngagementStore) AddEngagement(_ context.Context, resourceID, userID int64, kind models.EngagementKind) (bool, error) {
	key := engagementKey{resourceID, userID, kind}
	if f.rows[key] {
		return false, nil
	}
	f.rows[key] = true
	return true, nil
}

func (f *fakeEngagementStore) RemoveEngagement(_ context.Context, resourceID, userID int64, kind models.EngagementKind) (bool, error) {
	key := engagementKey{resourceID, userID, kind}
	if !f.rows[key] {
		return false, nil
	}
	delete(f.rows, key)
	return true, nil
}

func (f *fakeEngagementStore) CountByKind(_ context.Context, resourceID int64, kind models.EngagementKind) (int64, error) {
	var n int64
	for key := range f.rows {
		if key.resourceID == resourceID && key.kind == kind {
			n++
		}
	}
	return n, nil
}

type fakeResourceFinder struct {
	known map[int64]bool
}

func (f *fakeResourceFinder) GetResourceByID(_ context.Context, id int64) (*repositories.ResourceDetails, error) {
	if !f.known[id] {
		return nil, apperrors.ErrResourceNotFound
	}
	return &repositories.ResourceDetails{}, nil
}

func newEngagementServiceForTest(store engagementStore) EngagementService {
	return NewEngagementService(store, &fakeResourceFinder{known: map[int64]bool{1: true}}, zerolog.Nop())
}

func TestEngageLikeToggles(t *testing.T) {
	svc := newEngagementServiceForTest(newFakeEngagementStore())
	ctx := context.Background()

	first, err := svc.Engage(ctx, 1, 10, models.EngagementLike)
	if err != nil {
		t.Fatalf("Engage() error = %v", err)
	}
	if !first.Active || first.Count != 1 {
		t.Errorf("first like: active=%v count=%d, want active=true count=1", first.Active, first.Count)
	}

	second, err := svc.Engage(ctx, 1, 10, models.EngagementLike)
	if err != nil {
		t.Fatalf("Engage() error = %v", err)
	}
	if second.Active || second.Count != 0 {
		t.Errorf("second like: active=%v count=%d, want active=false count=0", second.Active, second.Count)
	}

	third, err := svc.Engage(ctx, 1, 10, models.EngagementLike)
	if err != nil {
		t.Fatalf("Engage() error = %v", err)
	}
	if !third.Active || third.Count != 1 {
		t.Errorf("third like: active=%v count=%d, want active=true count=1", third.Active, third.Count)
	}
}

func TestEngageViewRecordsOnce(t *testing.T) {
	svc := newEngagementServiceForTest(newFakeEngagementStore())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		resp, err := svc.Engage(ctx, 1, 10, models.EngagementView)
		if err != nil {
			t.Fatalf("Engage() error = %v", err)
		}
		if !resp.Active || resp.Count != 1 {
			t.Errorf("view %d: active=%v count=%d, want active=true count=1", i+1, resp.Active, resp.Count)
		}
	}
}

func TestEngageCountsUsersNotEvents(t *testing.T) {
	store := newFakeEngagementStore()
	svc := newEngagementServiceForTest(store)
	ctx := context.Background()

	for userID := int64(10); userID < 13; userID++ {
		if _, err := svc.Engage(ctx, 1, userID, models.EngagementDownload); err != nil {
			t.Fatalf("Engage() error = %v", err)
		}
		// Repeat from the same user must not add a count.
		if _, err := svc.Engage(ctx, 1, userID, models.EngagementDownload); err != nil {
			t.Fatalf("Engage() error = %v", err)
		}
	}

	count, err := store.CountByKind(ctx, 1, models.EngagementDownload)
	if err != nil {
		t.Fatalf("CountByKind() error = %v", err)
	}
	if count != 3 {
		t.Errorf("download count = %d, want 3 (one per user)", count)
	}
}

func TestEngageUnknownKind(t *testing.T) {
	svc := newEngagementServiceForTest(newFakeEngagementStore())

	_, err := svc.Engage(context.Background(), 1, 10, models.EngagementKind("SHARE"))
	if err == nil {
		t.Fatal("expected error for unknown engagement kind")
	}
	var customErr *apperrors.CustomError
	if !errors.As(err, &customErr) {
		t.Errorf("error = %v, want a validation error", err)
	}
}

func TestEngageMissingResource(t *testing.T) {
	svc := newEngagementServiceForTest(newFakeEngagementStore())

	_, err := svc.Engage(context.Background(), 999, 10, models.EngagementLike)
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("error = %v, want ErrResourceNotFound", err)
	}
}
