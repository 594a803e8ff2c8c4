package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goal-cascade-api/internal/domain"
	"github.com/goal-cascade-api/internal/dto"
	"github.com/goal-cascade-api/internal/service"
)

type GoalHandler struct {
	goalService      service.GoalService
	progressService  service.ProgressService
	scoringService   service.ScoringService
	alignmentService service.AlignmentService
	validator        *validator.Validate
	logger           *slog.Logger
}

func NewGoalHandler(
	goalService service.GoalService,
	progressService service.ProgressService,
	scoringService service.ScoringService,
	alignmentService service.AlignmentService,
	logger *slog.Logger,
) *GoalHandler {
	return &GoalHandler{
		goalService:      goalService,
		progressService:  progressService,
		scoringService:   scoringService,
		alignmentService: alignmentService,
		validator:        validator.New(),
		logger:           logger,
	}
}

func (h *GoalHandler) CreateCorporate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCreateRequest(w, r)
	if !ok {
		return
	}

	goal, err := h.goalService.CreateCorporateGoal(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, h.toGoalResponse(goal))
}

func (h *GoalHandler) CreateManager(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCreateRequest(w, r)
	if !ok {
		return
	}

	goal, err := h.goalService.CreateManagerGoal(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, h.toGoalResponse(goal))
}

func (h *GoalHandler) Cascade(w http.ResponseWriter, r *http.Request) {
	parentID, err := h.extractID(r, "/goals/")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid goal id", err.Error())
		return
	}

	req, ok := h.decodeCreateRequest(w, r)
	if !ok {
		return
	}

	goal, err := h.goalService.CascadeGoal(r.Context(), parentID, req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, h.toGoalResponse(goal))
}

func (h *GoalHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	goalID, err := h.extractID(r, "/goals/")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid goal id", err.Error())
		return
	}

	var req dto.UpdateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	goal, err := h.progressService.UpdateProgress(r.Context(), goalID, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.toGoalResponse(goal))
}

func (h *GoalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	goalID, err := h.extractID(r, "/goals/")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid goal id", err.Error())
		return
	}

	var req dto.CancelGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	goal, err := h.goalService.Cancel(r.Context(), req.AccountID, goalID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.toGoalResponse(goal))
}

func (h *GoalHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	goalID, err := h.extractID(r, "/goals/")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid goal id", err.Error())
		return
	}

	accountID, err := h.parseAccountID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid account_id", err.Error())
		return
	}

	goal, err := h.goalService.GetByID(r.Context(), accountID, goalID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.toGoalResponse(goal))
}

func (h *GoalHandler) History(w http.ResponseWriter, r *http.Request) {
	goalID, err := h.extractID(r, "/goals/")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid goal id", err.Error())
		return
	}

	accountID, err := h.parseAccountID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid account_id", err.Error())
		return
	}

	entries, err := h.progressService.History(r.Context(), accountID, goalID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	resp := make([]dto.ProgressUpdateResponse, len(entries))
	for i := range entries {
		resp[i] = h.toProgressUpdateResponse(&entries[i])
	}

	h.respondJSON(w, http.StatusOK, resp)
}

func (h *GoalHandler) Score(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.extractID(r, "/employees/")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid employee id", err.Error())
		return
	}

	query, err := h.parseScoreQuery(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid query", err.Error())
		return
	}

	if err := h.validator.Struct(query); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	result, err := h.scoringService.GetEmployeeGoalsScore(r.Context(), query.AccountID, employeeID, query.AsOf)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

func (h *GoalHandler) Orphans(w http.ResponseWriter, r *http.Request) {
	query, ok := h.decodeAnalyticsQuery(w, r)
	if !ok {
		return
	}

	goals, err := h.alignmentService.DetectOrphans(r.Context(), query.AccountID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	resp := make([]dto.GoalResponse, len(goals))
	for i := range goals {
		resp[i] = h.toGoalResponse(&goals[i])
	}

	h.respondJSON(w, http.StatusOK, resp)
}

func (h *GoalHandler) Report(w http.ResponseWriter, r *http.Request) {
	query, ok := h.decodeAnalyticsQuery(w, r)
	if !ok {
		return
	}

	report, err := h.alignmentService.GetAlignmentReport(r.Context(), query.AccountID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, report)
}

func (h *GoalHandler) Tree(w http.ResponseWriter, r *http.Request) {
	query, ok := h.decodeAnalyticsQuery(w, r)
	if !ok {
		return
	}

	if query.PeriodYear == 0 {
		h.respondError(w, http.StatusBadRequest, "invalid period_year", "period_year is required")
		return
	}

	goals, err := h.alignmentService.GetAlignmentTree(r.Context(), query.AccountID, query.PeriodYear)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	resp := make([]dto.GoalResponse, len(goals))
	for i := range goals {
		resp[i] = h.toGoalResponse(&goals[i])
	}

	h.respondJSON(w, http.StatusOK, resp)
}

func (h *GoalHandler) decodeCreateRequest(w http.ResponseWriter, r *http.Request) (*dto.CreateGoalRequest, bool) {
	var req dto.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return nil, false
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return nil, false
	}

	return &req, true
}

func (h *GoalHandler) extractID(r *http.Request, prefix string) (int64, error) {
	path := strings.TrimPrefix(r.URL.Path, prefix)
	path = strings.Trim(path, "/")

	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		return 0, errors.New("id is required")
	}

	return strconv.ParseInt(parts[0], 10, 64)
}

func (h *GoalHandler) parseAccountID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.URL.Query().Get("account_id"), 10, 64)
}

// decodeAnalyticsQuery разбирает и проверяет общие параметры
// аналитических запросов
func (h *GoalHandler) decodeAnalyticsQuery(w http.ResponseWriter, r *http.Request) (*dto.AnalyticsQuery, bool) {
	accountID, err := h.parseAccountID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid account_id", err.Error())
		return nil, false
	}

	query := &dto.AnalyticsQuery{AccountID: accountID}
	if yearStr := r.URL.Query().Get("period_year"); yearStr != "" {
		query.PeriodYear, err = strconv.Atoi(yearStr)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "invalid period_year", err.Error())
			return nil, false
		}
	}

	if err := h.validator.Struct(query); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return nil, false
	}

	return query, true
}

func (h *GoalHandler) parseScoreQuery(r *http.Request) (*dto.ScoreQuery, error) {
	accountID, err := h.parseAccountID(r)
	if err != nil {
		return nil, err
	}

	// Без явного as_of балл считается на текущий момент
	asOf := time.Now()
	if asOfStr := r.URL.Query().Get("as_of"); asOfStr != "" {
		asOf, err = time.Parse(time.RFC3339, asOfStr)
		if err != nil {
			return nil, err
		}
	}

	return &dto.ScoreQuery{AccountID: accountID, AsOf: asOf}, nil
}

func (h *GoalHandler) toGoalResponse(goal *domain.Goal) dto.GoalResponse {
	resp := dto.GoalResponse{
		ID:              goal.ID,
		AccountID:       goal.AccountID,
		Name:            goal.Name,
		Level:           string(goal.Level),
		OriginType:      string(goal.OriginType),
		GoalType:        goal.GoalType,
		EmployeeID:      goal.EmployeeID,
		DepartmentID:    goal.DepartmentID,
		CreatedByID:     goal.CreatedByID,
		ParentID:        goal.ParentID,
		IsAligned:       goal.IsAligned,
		IsOrphan:        goal.IsOrphan,
		StartDate:       goal.StartDate.Format("2006-01-02"),
		DueDate:         goal.DueDate.Format("2006-01-02"),
		PeriodYear:      goal.PeriodYear,
		PeriodQuarter:   goal.PeriodQuarter,
		MetricType:      string(goal.MetricType),
		Unit:            goal.Unit,
		StartValue:      goal.StartValue,
		TargetValue:     goal.TargetValue,
		CurrentValue:    goal.CurrentValue,
		Weight:          goal.Weight,
		Progress:        goal.Progress,
		Status:          string(goal.Status),
		CompletedAt:     goal.CompletedAt,
		LinkedDevGoalID: goal.LinkedDevGoalID,
		CreatedAt:       goal.CreatedAt,
	}

	if len(goal.Children) > 0 {
		resp.Children = make([]dto.GoalResponse, len(goal.Children))
		for i := range goal.Children {
			resp.Children[i] = h.toGoalResponse(&goal.Children[i])
		}
	}

	return resp
}

func (h *GoalHandler) toProgressUpdateResponse(entry *domain.ProgressUpdate) dto.ProgressUpdateResponse {
	return dto.ProgressUpdateResponse{
		ID:               entry.ID,
		GoalID:           entry.GoalID,
		PreviousValue:    entry.PreviousValue,
		NewValue:         entry.NewValue,
		PreviousProgress: entry.PreviousProgress,
		NewProgress:      entry.NewProgress,
		Comment:          entry.Comment,
		Evidence:         entry.Evidence,
		UpdatedByID:      entry.UpdatedByID,
		CreatedAt:        entry.CreatedAt,
	}
}

func (h *GoalHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrGoalNotFound):
		h.respondError(w, http.StatusNotFound, "goal not found", "")
	case errors.Is(err, domain.ErrParentGoalNotFound):
		h.respondError(w, http.StatusNotFound, "parent goal not found", "")
	case errors.Is(err, domain.ErrInvalidTimeWindow):
		h.respondError(w, http.StatusBadRequest, "start date must be before due date", "")
	case errors.Is(err, domain.ErrInvalidLevel):
		h.respondError(w, http.StatusBadRequest, "goal level must be AREA or INDIVIDUAL", "")
	case errors.Is(err, domain.ErrTargetValueRequired):
		h.respondError(w, http.StatusBadRequest, "target value is required", "")
	case errors.Is(err, domain.ErrOwnerMismatch):
		h.respondError(w, http.StatusBadRequest, "goal owner does not match goal level", "")
	case errors.Is(err, domain.ErrGoalCancelled):
		h.respondError(w, http.StatusConflict, "goal is cancelled", "")
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

func (h *GoalHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *GoalHandler) respondError(w http.ResponseWriter, status int, errMsg, details string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Error: errMsg}
	if details != "" {
		resp.Message = details
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}
