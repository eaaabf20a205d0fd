package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/samber/lo"
	"github.com/typeflow/typeflow/internal/db"
	"github.com/typeflow/typeflow/internal/game"
	"github.com/typeflow/typeflow/internal/metrics"
)

type ResultHandler struct {
	repo db.Repository
	log  *slog.Logger
	now  func() time.Time
}

func NewResultHandler(repo db.Repository, log *slog.Logger) *ResultHandler {
	return &ResultHandler{repo: repo, log: log, now: time.Now}
}

type resultResponse struct {
	ID         int64   `json:"id"`
	Player     string  `json:"player"`
	Words      int32   `json:"words"`
	Keystrokes int32   `json:"keystrokes"`
	Mistakes   int32   `json:"mistakes"`
	Skipped    int32   `json:"skipped"`
	DurationMs int64   `json:"duration_ms"`
	Kpm        float64 `json:"kpm"`
	Accuracy   float64 `json:"accuracy"`
	CreatedAt  string  `json:"created_at"`
}

type paginationMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

type listResponse struct {
	Data       []resultResponse `json:"data"`
	Pagination paginationMeta   `json:"pagination"`
}

func toResultResponse(r db.Result, _ int) resultResponse {
	return resultResponse{
		ID:         r.ID,
		Player:     r.Player,
		Words:      r.Words,
		Keystrokes: r.Keystrokes,
		Mistakes:   r.Mistakes,
		Skipped:    r.Skipped,
		DurationMs: r.DurationMs,
		Kpm:        r.Kpm,
		Accuracy:   r.Accuracy,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
	}
}

func (h *ResultHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sort := q.Get("sort")
	if sort == "" {
		sort = "new"
	}
	if sort != "new" && sort != "top" {
		writeError(w, http.StatusBadRequest, "sort must be new or top")
		return
	}
	player := q.Get("player")

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 25
	}
	offset := (page - 1) * limit

	// Only the top board is filtered by period; the total follows the same filter.
	var since time.Time
	if sort == "top" {
		since = periodCutoff(h.now(), q.Get("period"))
	}

	total, err := h.repo.CountResults(r.Context(), db.CountResultsParams{Player: player, Since: since})
	if err != nil {
		h.log.ErrorContext(r.Context(), "counting results", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	var results []db.Result
	switch sort {
	case "top":
		results, err = h.repo.TopResults(r.Context(), db.TopResultsParams{
			Player: player,
			Limit:  int32(limit),
			Offset: int32(offset),
			Since:  since,
		})
	default:
		results, err = h.repo.ListResults(r.Context(), db.ListResultsParams{
			Player: player,
			Limit:  int32(limit),
			Offset: int32(offset),
		})
	}
	if err != nil {
		h.log.ErrorContext(r.Context(), "listing results", "sort", sort, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, listResponse{
		Data: lo.Map(results, toResultResponse),
		Pagination: paginationMeta{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

func (h *ResultHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	res, err := h.repo.GetResult(r.Context(), id)
	if err != nil {
		if db.IsNoRows(err) {
			writeError(w, http.StatusNotFound, "result not found")
			return
		}
		h.log.ErrorContext(r.Context(), "getting result", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toResultResponse(res, 0))
}

type createResultRequest struct {
	Player     string `json:"player" validate:"required,max=32"`
	Words      int    `json:"words" validate:"gte=0,lte=1000"`
	Keystrokes int    `json:"keystrokes" validate:"gte=1,lte=100000"`
	Mistakes   int    `json:"mistakes" validate:"gte=0,ltefield=Keystrokes"`
	Skipped    int    `json:"skipped" validate:"gte=0,lte=1000"`
	DurationMs int64  `json:"duration_ms" validate:"gte=1000,lte=86400000"`
}

// Create stores a finished game. KPM and accuracy are computed here, never
// taken from the client.
func (h *ResultHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createResultRequest
	if err := decodeJSON(w, r, &req); err != nil {
		metrics.ResultSubmissions.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary := game.Result{
		Player:     req.Player,
		Words:      req.Words,
		Keystrokes: req.Keystrokes,
		Mistakes:   req.Mistakes,
		Skipped:    req.Skipped,
		Duration:   time.Duration(req.DurationMs) * time.Millisecond,
	}

	res, err := h.repo.CreateResult(r.Context(), summary.CreateParams())
	if err != nil {
		metrics.ResultSubmissions.WithLabelValues("error").Inc()
		h.log.ErrorContext(r.Context(), "creating result", "player", req.Player, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	metrics.ResultSubmissions.WithLabelValues("created").Inc()
	metrics.ResultKPM.Observe(res.Kpm)
	h.log.InfoContext(r.Context(), "result created", "id", res.ID, "player", res.Player, "kpm", res.Kpm)
	writeJSON(w, http.StatusCreated, toResultResponse(res, 0))
}

func periodCutoff(now time.Time, period string) time.Time {
	switch period {
	case "day":
		return now.Add(-24 * time.Hour)
	case "week":
		return now.Add(-7 * 24 * time.Hour)
	case "month":
		return now.Add(-30 * 24 * time.Hour)
	case "year":
		return now.Add(-365 * 24 * time.Hour)
	default:
		return time.Time{}
	}
}
