package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-insights/internal/insight"
	"github.com/rxtech-lab/argo-insights/internal/quote"
	"github.com/rxtech-lab/argo-insights/internal/store"
	"github.com/rxtech-lab/argo-insights/internal/types"
	"github.com/rxtech-lab/argo-insights/pkg/errors"
	"go.uber.org/zap"
)

const (
	// favoritesCollection is the document store collection holding saved
	// favorites.
	favoritesCollection = "stockfavorite"
	// favoritesListLimit caps how many favorites a single listing returns.
	favoritesListLimit = 100
)

type historyResponse struct {
	Symbol string           `json:"symbol"`
	Prices []types.PriceBar `json:"prices"`
}

type createFavoriteResponse struct {
	ID string `json:"id"`
}

type listFavoritesResponse struct {
	Items []store.Document `json:"items"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, messageResponse{Message: "AI Stock Insights Backend is running"})
}

func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	diagnostics := s.documents.Diagnostics(r.Context())
	s.writeJSON(w, http.StatusOK, diagnostics)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	bars, err := s.fetchHistory(r, symbol)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, historyResponse{
		Symbol: strings.ToUpper(symbol),
		Prices: bars,
	})
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	bars, err := s.fetchHistory(r, symbol)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result := insight.Analyze(symbol, bars)
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) fetchHistory(r *http.Request, symbol string) ([]types.PriceBar, error) {
	raw, err := s.fetcher.FetchDailyHistory(r.Context(), symbol)
	if err != nil {
		return nil, err
	}

	return quote.ParseDailyCSV(raw)
}

func (s *Server) handleCreateFavorite(w http.ResponseWriter, r *http.Request) {
	var document store.Document
	if err := json.NewDecoder(r.Body).Decode(&document); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidPayload, "invalid request body", err))
		return
	}

	favorite := types.Favorite{}
	if symbol, ok := document["symbol"].(string); ok {
		favorite.Symbol = symbol
	}
	if userID, ok := document["user_id"].(string); ok {
		favorite.UserID = userID
	}

	if err := s.validate.Struct(favorite); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidPayload, "favorite requires a symbol", err))
		return
	}

	id, err := s.documents.Create(r.Context(), favoritesCollection, document)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, createFavoriteResponse{ID: id})
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	filter := optional.None[store.Filter]()
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		filter = optional.Some(store.Filter{Field: "user_id", Value: userID})
	}

	documents, err := s.documents.Query(r.Context(), favoritesCollection, filter, favoritesListLimit)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if documents == nil {
		documents = []store.Document{}
	}

	s.writeJSON(w, http.StatusOK, listFavoritesResponse{Items: documents})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeError maps structured error codes onto HTTP statuses: quote errors
// become 404, validation errors become 400, everything else is a 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	var appErr *errors.Error
	if errors.As(err, &appErr) {
		switch {
		case errors.IsQuoteCode(appErr.Code):
			status = http.StatusNotFound
			message = appErr.Message
		case appErr.Code >= 100 && appErr.Code < 200:
			status = http.StatusBadRequest
			message = appErr.Message
		}
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("Request failed", zap.Error(err))
	}

	s.writeJSON(w, status, errorResponse{Error: message})
}
