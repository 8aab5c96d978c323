package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/fyzahq/fyza/internal/ctxkeys"
	"github.com/fyzahq/fyza/internal/model"
	"github.com/fyzahq/fyza/internal/service"
	"github.com/fyzahq/fyza/internal/validation"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := pathInt64(r, "user_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	goals, err := h.goalService.Goals(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.GoalInput
	err := decodeJSON(w, r, &in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	goal, err := h.goalService.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ctxkeys.Logger(r.Context()).Info("financial goal created", "goal_id", goal.GoalID, "user_id", goal.UserID)
	writeJSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	goalID, err := goalIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var u model.GoalUpdate
	err = decodeJSON(w, r, &u)
	if err != nil {
		writeError(w, r, err)
		return
	}

	goal, err := h.goalService.Update(r.Context(), goalID, u)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	goalID, err := goalIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	err = h.goalService.Delete(r.Context(), goalID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ctxkeys.Logger(r.Context()).Info("financial goal deleted", "goal_id", goalID)
	w.WriteHeader(http.StatusNoContent)
}

// goalIDFromPath accepts any UUID form and returns it canonicalized
func goalIDFromPath(r *http.Request) (string, error) {
	id, err := uuid.Parse(r.PathValue("goal_id"))
	if err != nil {
		return "", &validation.Error{Field: "goal_id", Message: "must be a UUID"}
	}
	return id.String(), nil
}
