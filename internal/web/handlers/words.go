package handlers

import (
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/samber/lo"
	"github.com/typeflow/typeflow/internal/words"
)

const (
	defaultWordCount = 10
	maxWordCount     = 100
)

type WordHandler struct {
	list words.List
	log  *slog.Logger
}

func NewWordHandler(list words.List, log *slog.Logger) *WordHandler {
	return &WordHandler{list: list, log: log}
}

type wordResponse struct {
	Text    string `json:"text"`
	Reading string `json:"reading"`
	Romaji  string `json:"romaji"`
	Display string `json:"display"`
}

type wordsResponse struct {
	Data []wordResponse `json:"data"`
}

func toWordResponse(w words.Word, _ int) wordResponse {
	return wordResponse{
		Text:    w.Text,
		Reading: w.Reading,
		Romaji:  w.Romaji,
		Display: w.Display(),
	}
}

func (h *WordHandler) List(w http.ResponseWriter, r *http.Request) {
	count := defaultWordCount
	if s := r.URL.Query().Get("count"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxWordCount {
			writeError(w, http.StatusBadRequest, "count must be between 1 and 100")
			return
		}
		count = n
	}

	rnd := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	picked := h.list.Pick(count, rnd)

	writeJSON(w, http.StatusOK, wordsResponse{Data: lo.Map(picked, toWordResponse)})
}
