package rest

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/fortuna/gridiron/internal/cache"
	"github.com/fortuna/gridiron/internal/publisher"
	"github.com/fortuna/gridiron/internal/service"
	"github.com/fortuna/gridiron/internal/store"
	"github.com/fortuna/gridiron/internal/store/repository"
	"github.com/gorilla/mux"
)

// topPerformancesTTL bounds staleness of the cached top-performances board.
const topPerformancesTTL = 60 * time.Second

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db                 *store.Database
	cache              *cache.RedisCache
	publisher          *publisher.RedisPublisher
	performanceService *service.PerformanceService
	reportService      *service.ReportService
	playerRepo         *repository.PlayerRepository
	gameRepo           *repository.GameRepository
	statsRepo          *repository.StatEventRepository
	gradeRepo          *repository.GradeRepository
	recruitRepo        *repository.RecruitRepository
}

// NewHandler creates a new handler
func NewHandler(db *store.Database, redisCache *cache.RedisCache, redisPublisher *publisher.RedisPublisher) *Handler {
	return &Handler{
		db:                 db,
		cache:              redisCache,
		publisher:          redisPublisher,
		performanceService: service.NewPerformanceService(db),
		reportService:      service.NewReportService(db, redisCache),
		playerRepo:         repository.NewPlayerRepository(db),
		gameRepo:           repository.NewGameRepository(db),
		statsRepo:          repository.NewStatEventRepository(db),
		gradeRepo:          repository.NewGradeRepository(db),
		recruitRepo:        repository.NewRecruitRepository(db),
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "gridiron",
		"version": "1.0.0",
	})
}

// GetTopPerformances returns the current week's top performances
func (h *Handler) GetTopPerformances(w http.ResponseWriter, r *http.Request) {
	limit := 5 // default
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	cacheKey := fmt.Sprintf("top_performances:%d", limit)
	if h.cache != nil {
		if cached, err := h.cache.Get(r.Context(), cacheKey); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(cached))
			return
		}
	}

	result, err := h.performanceService.TopPerformances(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute top performances", err)
		return
	}

	if h.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			h.cache.Set(r.Context(), cacheKey, string(data), topPerformancesTTL)
		}
	}

	respondJSON(w, http.StatusOK, result)
}

// GetLeaderboard returns players ranked by average grade over a date range
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	start := time.Time{}
	if startStr := r.URL.Query().Get("start_date"); startStr != "" {
		parsed, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid start_date (use YYYY-MM-DD)", err)
			return
		}
		start = parsed
	}

	end := time.Now().AddDate(0, 0, 1)
	if endStr := r.URL.Query().Get("end_date"); endStr != "" {
		parsed, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid end_date (use YYYY-MM-DD)", err)
			return
		}
		end = parsed
	}

	limit := 25 // default
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	leaderboard, err := h.performanceService.Leaderboard(r.Context(), start, end, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute leaderboard", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"leaderboard": leaderboard})
}

// GetRecruitReports re-synchronizes recruits, populates the requested week's
// reports, and returns the joined dossier
func (h *Handler) GetRecruitReports(w http.ResponseWriter, r *http.Request) {
	weekStr := r.URL.Query().Get("week_start_date")
	if weekStr == "" {
		respondError(w, http.StatusBadRequest, "Missing required parameter 'week_start_date'", nil)
		return
	}

	weekStart, err := time.Parse("2006-01-02", weekStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid week_start_date (use YYYY-MM-DD)", err)
		return
	}

	dossier, err := h.reportService.BuildDossier(r.Context(), weekStart)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build recruit reports", err)
		return
	}

	respondJSON(w, http.StatusOK, dossier)
}

// reportPayload is the manual report upsert body
type reportPayload struct {
	WeekStartDate string             `json:"week_start_date"`
	GameID        *int               `json:"game_id"`
	Opponent      *string            `json:"opponent"`
	Result        *string            `json:"result"`
	Score         *string            `json:"score"`
	NextOpponent  *string            `json:"next_opponent"`
	NextGameDate  *string            `json:"next_game_date"`
	Stats         map[string]float64 `json:"stats"`
	OtherStats    []string           `json:"other_stats"`
	Notes         *string            `json:"notes"`
}

// PutRecruitReport writes a caller-supplied weekly report for one recruit,
// bypassing the automated merge policy
func (h *Handler) PutRecruitReport(w http.ResponseWriter, r *http.Request) {
	recruitID, err := strconv.Atoi(mux.Vars(r)["recruitID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid recruit ID", err)
		return
	}

	var payload reportPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if payload.WeekStartDate == "" {
		respondError(w, http.StatusBadRequest, "Missing required field 'week_start_date'", nil)
		return
	}
	weekStart, err := time.Parse("2006-01-02", payload.WeekStartDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid week_start_date (use YYYY-MM-DD)", err)
		return
	}

	report := &store.WeeklyReport{
		RecruitID:    recruitID,
		WeekStart:    weekStart,
		Opponent:     nullString(payload.Opponent),
		Result:       nullString(payload.Result),
		Score:        nullString(payload.Score),
		NextOpponent: nullString(payload.NextOpponent),
		NextGameDate: nullString(payload.NextGameDate),
		OtherStats:   payload.OtherStats,
		Notes:        nullString(payload.Notes),
	}
	if payload.GameID != nil {
		report.GameID = sql.NullInt32{Int32: int32(*payload.GameID), Valid: true}
	}
	if len(payload.Stats) > 0 {
		data, err := json.Marshal(payload.Stats)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid stats object", err)
			return
		}
		report.Stats = data
	}

	saved, err := h.reportService.ManualUpsert(r.Context(), report)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Recruit not found", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to save report", err)
		return
	}

	respondJSON(w, http.StatusOK, saved)
}

// GetRecruits returns all recruit tracking records
func (h *Handler) GetRecruits(w http.ResponseWriter, r *http.Request) {
	recruits, err := h.recruitRepo.GetAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch recruits", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"recruits": recruits})
}

// GetPlayers returns all players, optionally filtered by a name search
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	var players []*store.Player
	var err error

	if search := r.URL.Query().Get("search"); search != "" {
		players, err = h.playerRepo.Search(r.Context(), search)
	} else {
		players, err = h.playerRepo.GetAll(r.Context())
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch players", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"players": players})
}

// playerPayload is the player creation body
type playerPayload struct {
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Position        *string  `json:"position"`
	OffensePosition *string  `json:"offense_position"`
	DefensePosition *string  `json:"defense_position"`
	School          *string  `json:"school"`
	State           *string  `json:"state"`
	GradYear        *int     `json:"grad_year"`
	RecruitingTags  []string `json:"recruiting_tags"`
	CommittedSchool *string  `json:"committed_school"`
}

// CreatePlayer inserts a new player
func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var payload playerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if payload.LastName == "" {
		respondError(w, http.StatusBadRequest, "Missing required field 'last_name'", nil)
		return
	}

	fullName := payload.LastName
	if payload.FirstName != "" {
		fullName = payload.FirstName + " " + payload.LastName
	}

	player := &store.Player{
		FirstName:       payload.FirstName,
		LastName:        payload.LastName,
		FullName:        fullName,
		Position:        nullString(payload.Position),
		OffensePosition: nullString(payload.OffensePosition),
		DefensePosition: nullString(payload.DefensePosition),
		School:          nullString(payload.School),
		State:           nullString(payload.State),
		RecruitingTags:  payload.RecruitingTags,
		CommittedSchool: nullString(payload.CommittedSchool),
	}
	if payload.GradYear != nil {
		player.GradYear = sql.NullInt32{Int32: int32(*payload.GradYear), Valid: true}
	}

	if err := h.playerRepo.Create(r.Context(), player); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create player", err)
		return
	}

	respondJSON(w, http.StatusCreated, player)
}

// GetPlayer returns a player by ID
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	playerID, err := strconv.Atoi(mux.Vars(r)["playerID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid player ID", err)
		return
	}

	player, err := h.playerRepo.GetByID(r.Context(), playerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Player not found", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch player", err)
		return
	}

	respondJSON(w, http.StatusOK, player)
}

// GetGamesByDate returns all games on a specific date
func (h *Handler) GetGamesByDate(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		dateStr = time.Now().Format("2006-01-02")
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	games, err := h.gameRepo.GetByDate(r.Context(), date)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch games", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"games": games})
}

// gamePayload is the game creation body
type gamePayload struct {
	Opponent string  `json:"opponent"`
	GameDate string  `json:"game_date"`
	Level    *string `json:"level"`
}

// CreateGame inserts a new game
func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var payload gamePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if payload.Opponent == "" {
		respondError(w, http.StatusBadRequest, "Missing required field 'opponent'", nil)
		return
	}
	gameDate, err := time.Parse("2006-01-02", payload.GameDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game_date (use YYYY-MM-DD)", err)
		return
	}

	game := &store.Game{
		Opponent: payload.Opponent,
		GameDate: gameDate,
		Level:    nullString(payload.Level),
	}

	if err := h.gameRepo.Create(r.Context(), game); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create game", err)
		return
	}

	respondJSON(w, http.StatusCreated, game)
}

// GetGame returns a specific game by ID
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := strconv.Atoi(mux.Vars(r)["gameID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game ID", err)
		return
	}

	game, err := h.gameRepo.GetByID(r.Context(), gameID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Game not found", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch game", err)
		return
	}

	respondJSON(w, http.StatusOK, game)
}

// GetStatEvents returns the recorded stat events for a player in a game
func (h *Handler) GetStatEvents(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID, err := strconv.Atoi(vars["gameID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game ID", err)
		return
	}
	playerID, err := strconv.Atoi(vars["playerID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid player ID", err)
		return
	}

	events, err := h.statsRepo.GetForGamePlayer(r.Context(), gameID, playerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch stat events", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

// statEventsPayload is the stat recording body
type statEventsPayload struct {
	Events []struct {
		StatType string  `json:"stat_type"`
		Value    float64 `json:"value"`
	} `json:"events"`
}

// RecordStatEvents records observed stat events for a player in a game
func (h *Handler) RecordStatEvents(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID, err := strconv.Atoi(vars["gameID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game ID", err)
		return
	}
	playerID, err := strconv.Atoi(vars["playerID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid player ID", err)
		return
	}

	var payload statEventsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(payload.Events) == 0 {
		respondError(w, http.StatusBadRequest, "Missing required field 'events'", nil)
		return
	}
	for i, ev := range payload.Events {
		if ev.StatType == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Missing stat_type in events[%d]", i), nil)
			return
		}
	}

	if err := h.gameRepo.LinkPlayer(r.Context(), gameID, playerID); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to link player to game", err)
		return
	}

	recorded := make([]*store.StatEvent, 0, len(payload.Events))
	for _, ev := range payload.Events {
		event := &store.StatEvent{
			GameID:   gameID,
			PlayerID: playerID,
			StatType: ev.StatType,
			Value:    ev.Value,
		}
		if err := h.statsRepo.Insert(r.Context(), event); err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to record stat event", err)
			return
		}
		recorded = append(recorded, event)
	}

	if h.publisher != nil {
		if err := h.publisher.PublishStatEvent(r.Context(), map[string]interface{}{
			"game_id":   gameID,
			"player_id": playerID,
			"count":     len(recorded),
		}); err != nil {
			// Non-fatal: the events are already persisted.
			log.Printf("⚠️ Failed to publish stat event: %v", err)
		}
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"events": recorded})
}

// gradePayload is the grade upsert body
type gradePayload struct {
	Letter       *string `json:"letter"`
	Notes        *string `json:"notes"`
	AdminNotes   *string `json:"admin_notes"`
	GameScore    *string `json:"game_score"`
	NextOpponent *string `json:"next_opponent"`
	NextGameDate *string `json:"next_game_date"`
}

// UpsertGrade writes the grade for a (game, player) pair
func (h *Handler) UpsertGrade(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID, err := strconv.Atoi(vars["gameID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game ID", err)
		return
	}
	playerID, err := strconv.Atoi(vars["playerID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid player ID", err)
		return
	}

	var payload gradePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	grade := &store.Grade{
		GameID:       gameID,
		PlayerID:     playerID,
		Letter:       nullString(payload.Letter),
		Notes:        nullString(payload.Notes),
		AdminNotes:   nullString(payload.AdminNotes),
		GameScore:    nullString(payload.GameScore),
		NextOpponent: nullString(payload.NextOpponent),
		NextGameDate: nullString(payload.NextGameDate),
	}

	if err := h.gradeRepo.Upsert(r.Context(), grade); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save grade", err)
		return
	}

	respondJSON(w, http.StatusOK, grade)
}

// nullString converts an optional JSON string to sql.NullString
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
