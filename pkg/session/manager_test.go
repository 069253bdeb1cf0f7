package session_test

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/formwise/pkg/adapters/memory"
	"github.com/aretw0/formwise/pkg/domain"
	"github.com/aretw0/formwise/pkg/ports"
	"github.com/aretw0/formwise/pkg/session"
)

func testForm() *domain.Form {
	return &domain.Form{
		ID: "licence",
		Steps: []domain.Step{
			{ID: "applicant-details", Fields: []domain.Field{
				{Name: "full_name", Question: "Name?", Type: domain.FieldText},
			}},
			{ID: "contact", Fields: []domain.Field{
				{Name: "email", Question: "Email?", Type: domain.FieldText},
			}},
		},
	}
}

func TestManager_StepDataRoundtrip(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()
	form := testForm()

	// Fresh sessions read as empty, never as an error.
	data, err := mgr.StepData(ctx, "s1", form.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, data)

	require.NoError(t, mgr.PutStep(ctx, "s1", form, 1, domain.Values{"full_name": "Ada"}))

	data, err = mgr.StepData(ctx, "s1", form.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ada", data["full_name"])

	visited, err := mgr.Visited(ctx, "s1", form.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, visited)
}

func TestManager_ConsolidatedDualKeys(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()
	form := testForm()

	require.NoError(t, mgr.PutStep(ctx, "s1", form, 1, domain.Values{"full_name": "Ada"}))
	require.NoError(t, mgr.PutStep(ctx, "s1", form, 2, domain.Values{"email": "ada@x"}))

	consolidated, err := mgr.Consolidated(ctx, "s1", form.ID)
	require.NoError(t, err)

	// Every answer is reachable under both the bare and the
	// step-qualified key.
	assert.Equal(t, "Ada", consolidated["full_name"])
	assert.Equal(t, "Ada", consolidated["applicant-details.full_name"])
	assert.Equal(t, "ada@x", consolidated["email"])
	assert.Equal(t, "ada@x", consolidated["contact.email"])
}

func TestManager_ResubmitRebuildsConsolidated(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()
	form := testForm()

	require.NoError(t, mgr.PutStep(ctx, "s1", form, 1, domain.Values{"full_name": "Ada"}))
	require.NoError(t, mgr.PutStep(ctx, "s1", form, 2, domain.Values{"email": "ada@x"}))

	// Going back and changing step 1 replaces its slot wholesale;
	// the consolidated view reflects only the latest submission.
	require.NoError(t, mgr.PutStep(ctx, "s1", form, 1, domain.Values{"full_name": "Grace"}))

	consolidated, err := mgr.Consolidated(ctx, "s1", form.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grace", consolidated["applicant-details.full_name"])
	assert.Equal(t, "ada@x", consolidated["contact.email"])

	visited, err := mgr.Visited(ctx, "s1", form.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, visited)
}

func TestManager_IdempotentPut(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()
	form := testForm()

	require.NoError(t, mgr.PutStep(ctx, "s1", form, 1, domain.Values{"full_name": "Ada"}))
	before, err := mgr.Consolidated(ctx, "s1", form.ID)
	require.NoError(t, err)

	require.NoError(t, mgr.PutStep(ctx, "s1", form, 1, domain.Values{"full_name": "Ada"}))
	after, err := mgr.Consolidated(ctx, "s1", form.ID)
	require.NoError(t, err)

	assert.Equal(t, before, after)
}

func TestManager_ResetScopedToForm(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()
	form := testForm()
	other := &domain.Form{ID: "other", Steps: []domain.Step{
		{ID: "only", Fields: []domain.Field{{Name: "q", Question: "Q?", Type: domain.FieldText}}},
	}}

	require.NoError(t, mgr.PutStep(ctx, "s1", form, 1, domain.Values{"full_name": "Ada"}))
	require.NoError(t, mgr.PutStep(ctx, "s1", other, 1, domain.Values{"q": "kept"}))

	require.NoError(t, mgr.Reset(ctx, "s1", form.ID))

	cleared, err := mgr.Consolidated(ctx, "s1", form.ID)
	require.NoError(t, err)
	assert.Empty(t, cleared)

	kept, err := mgr.Consolidated(ctx, "s1", other.ID)
	require.NoError(t, err)
	assert.Equal(t, "kept", kept["q"])
}

func TestManager_SessionIsolation(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()
	form := testForm()

	require.NoError(t, mgr.PutStep(ctx, "s1", form, 1, domain.Values{"full_name": "Ada"}))

	data, err := mgr.Consolidated(ctx, "s2", form.ID)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestManager_ConcurrentPuts(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()
	form := testForm()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := mgr.PutStep(ctx, "race", form, 1, domain.Values{"full_name": strconv.Itoa(i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// Last write wins, but the consolidated view must be coherent:
	// the slot and both consolidated keys agree.
	slot, err := mgr.StepData(ctx, "race", form.ID, 1)
	require.NoError(t, err)
	consolidated, err := mgr.Consolidated(ctx, "race", form.ID)
	require.NoError(t, err)
	assert.Equal(t, slot["full_name"], consolidated["full_name"])
	assert.Equal(t, slot["full_name"], consolidated["applicant-details.full_name"])
}

// countingLocker records distributed lock activity.
type countingLocker struct {
	mu      sync.Mutex
	locks   int
	unlocks int
}

func (l *countingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	l.locks++
	l.mu.Unlock()
	return func(context.Context) error {
		l.mu.Lock()
		l.unlocks++
		l.mu.Unlock()
		return nil
	}, nil
}

func TestManager_DistributedLocker(t *testing.T) {
	locker := &countingLocker{}
	mgr := session.NewManager(memory.NewStore(), session.WithLocker(locker))
	ctx := context.Background()
	form := testForm()

	require.NoError(t, mgr.PutStep(ctx, "s1", form, 1, domain.Values{"full_name": "Ada"}))
	require.NoError(t, mgr.Reset(ctx, "s1", form.ID))

	assert.Equal(t, 2, locker.locks)
	assert.Equal(t, 2, locker.unlocks)
}
