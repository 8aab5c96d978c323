package goals

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/fyzahq/fyza/internal/model"
)

// Goal is one entry of the local collection. CreatedAt and UpdatedAt are nil
// until the server has stored the goal.
type Goal struct {
	ID           Identity
	OwnerID      int64
	Name         string
	TargetAmount float64
	TargetDate   model.Date
	Priority     model.Priority
	CreatedAt    *time.Time
	UpdatedAt    *time.Time
}

func (g Goal) Pending() bool {
	return g.ID.Kind() == KindPending
}

func newPendingGoal(ownerID int64) Goal {
	return Goal{
		ID:       NewPendingIdentity(),
		OwnerID:  ownerID,
		Priority: model.PriorityMedium,
	}
}

func fromRecord(r model.FinancialGoal) Goal {
	created, updated := r.CreatedAt, r.UpdatedAt
	return Goal{
		ID:           PersistedIdentity(r.GoalID),
		OwnerID:      r.UserID,
		Name:         r.GoalName,
		TargetAmount: r.TargetAmount,
		TargetDate:   r.TargetDate,
		Priority:     r.Priority,
		CreatedAt:    &created,
		UpdatedAt:    &updated,
	}
}

func (g Goal) input() model.GoalInput {
	return model.GoalInput{
		UserID:       g.OwnerID,
		GoalName:     g.Name,
		TargetAmount: g.TargetAmount,
		TargetDate:   g.TargetDate,
		Priority:     g.Priority,
	}
}

// update carries every field so the server ends up with exactly the local state
func (g Goal) update() model.GoalUpdate {
	name, amount, date, priority := g.Name, g.TargetAmount, g.TargetDate, g.Priority
	return model.GoalUpdate{
		GoalName:     &name,
		TargetAmount: &amount,
		TargetDate:   &date,
		Priority:     &priority,
	}
}

type Field string

const (
	FieldName         Field = "goal_name"
	FieldTargetAmount Field = "target_amount"
	FieldTargetDate   Field = "target_date"
	FieldPriority     Field = "priority"
)

// ParseField accepts the wire names and their short forms
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "goal_name", "name":
		return FieldName, nil
	case "target_amount", "amount":
		return FieldTargetAmount, nil
	case "target_date", "date":
		return FieldTargetDate, nil
	case "priority":
		return FieldPriority, nil
	}
	return "", fmt.Errorf("unknown field %q", s)
}

// set assigns value to field. Strings are parsed the way form input would be.
func (g *Goal) set(field Field, value any) error {
	switch field {
	case FieldName:
		s, ok := value.(string)
		if !ok {
			return invalid(field, value)
		}
		g.Name = s

	case FieldTargetAmount:
		amount, err := toAmount(value)
		if err != nil {
			return invalid(field, value)
		}
		g.TargetAmount = amount

	case FieldTargetDate:
		switch v := value.(type) {
		case model.Date:
			g.TargetDate = v
		case time.Time:
			g.TargetDate = model.NewDate(v.Year(), v.Month(), v.Day())
		case string:
			d, err := model.ParseDate(strings.TrimSpace(v))
			if err != nil {
				return invalid(field, value)
			}
			g.TargetDate = d
		default:
			return invalid(field, value)
		}

	case FieldPriority:
		var p model.Priority
		switch v := value.(type) {
		case model.Priority:
			p = v
		case string:
			p = model.Priority(strings.TrimSpace(v))
		default:
			return invalid(field, value)
		}
		if !p.Valid() {
			return invalid(field, value)
		}
		g.Priority = p

	default:
		return fmt.Errorf("%w: unknown field %q", ErrInvalidValue, field)
	}
	return nil
}

func toAmount(value any) (float64, error) {
	var amount float64
	switch v := value.(type) {
	case float64:
		amount = v
	case float32:
		amount = float64(v)
	case int:
		amount = float64(v)
	case int64:
		amount = float64(v)
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, err
		}
		amount = f
	default:
		return 0, fmt.Errorf("unsupported type %T", value)
	}

	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return 0, fmt.Errorf("amount %v out of range", amount)
	}
	return amount, nil
}

func invalid(field Field, value any) error {
	return fmt.Errorf("%w for %s: %v", ErrInvalidValue, field, value)
}
