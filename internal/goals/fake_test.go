package goals

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/fyzahq/fyza/internal/model"
)

var errNetwork = errors.New("network unreachable")

// fakeRemote is an in-memory goals API that counts calls
type fakeRemote struct {
	mu     sync.Mutex
	nextID int
	goals  []model.FinancialGoal
	now    time.Time

	lists, creates, updates, deletes int
	updatedIDs, deletedIDs          []string

	listErr   error
	createErr func(in model.GoalInput) error
	updateErr func(goalID string) error
	deleteErr error
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{now: time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)}
}

func (f *fakeRemote) seed(ownerID int64, name string, priority model.Priority) model.FinancialGoal {
	f.mu.Lock()
	defer f.mu.Unlock()
	g := f.insert(model.GoalInput{
		UserID:       ownerID,
		GoalName:     name,
		TargetAmount: 1000,
		TargetDate:   model.NewDate(2030, time.June, 30),
		Priority:     priority,
	})
	return g
}

// insert must hold f.mu
func (f *fakeRemote) insert(in model.GoalInput) model.FinancialGoal {
	f.nextID++
	f.now = f.now.Add(time.Second)
	g := model.FinancialGoal{
		GoalID:       "goal-" + strconv.Itoa(f.nextID),
		UserID:       in.UserID,
		GoalName:     in.GoalName,
		TargetAmount: in.TargetAmount,
		TargetDate:   in.TargetDate,
		Priority:     in.Priority,
		CreatedAt:    f.now,
		UpdatedAt:    f.now,
	}
	f.goals = append(f.goals, g)
	return g
}

func (f *fakeRemote) ListGoals(ctx context.Context, ownerID int64) ([]model.FinancialGoal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}

	var out []model.FinancialGoal
	for _, g := range f.goals {
		if g.UserID == ownerID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeRemote) CreateGoal(ctx context.Context, in model.GoalInput) (*model.FinancialGoal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.createErr != nil {
		if err := f.createErr(in); err != nil {
			return nil, err
		}
	}
	g := f.insert(in)
	return &g, nil
}

func (f *fakeRemote) UpdateGoal(ctx context.Context, goalID string, u model.GoalUpdate) (*model.FinancialGoal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	f.updatedIDs = append(f.updatedIDs, goalID)
	if f.updateErr != nil {
		if err := f.updateErr(goalID); err != nil {
			return nil, err
		}
	}

	i := slices.IndexFunc(f.goals, func(g model.FinancialGoal) bool { return g.GoalID == goalID })
	if i < 0 {
		return nil, errors.New("failed to update financial goal: not found")
	}
	u.Apply(&f.goals[i])
	f.now = f.now.Add(time.Second)
	f.goals[i].UpdatedAt = f.now
	g := f.goals[i]
	return &g, nil
}

func (f *fakeRemote) DeleteGoal(ctx context.Context, goalID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	f.deletedIDs = append(f.deletedIDs, goalID)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.goals = slices.DeleteFunc(f.goals, func(g model.FinancialGoal) bool { return g.GoalID == goalID })
	return nil
}

func (f *fakeRemote) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists + f.creates + f.updates + f.deletes
}
