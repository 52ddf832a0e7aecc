package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	agentRepo "rosterly/database/repository/agent"
	timetableRepo "rosterly/database/repository/timetable"
	"rosterly/metrics"
	"rosterly/models"
	"rosterly/utils"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Scheduling strategies accepted by Generate.
const (
	StrategyGreedy = "greedy"
	StrategyAI     = "ai"
)

const timetableCacheTTL = 10 * time.Minute

// DefaultRosterService implements RosterService on top of the Mongo
// repositories, the Redis read cache, and the pluggable schedulers.
type DefaultRosterService struct {
	AgentRepo     agentRepo.AgentRepository
	TimetableRepo timetableRepo.TimetableRepository
	Cache         *redis.Client
	Engine        Scheduler
	AIEngine      Scheduler // nil when no API key is configured
}

// defaultAgents is the seed roster installed for a sync key that has no
// agents yet, so a fresh deployment renders a usable schedule immediately.
func defaultAgents(syncKey string) []models.Agent {
	return []models.Agent{
		{ID: "M1001", SyncKey: syncKey, Name: "Alex Tan", Class: models.FullTime, Unavailable: map[int][]int{2: {1, 2}, 5: {1}}},
		{ID: "F1002", SyncKey: syncKey, Name: "Siti Nor", Class: models.PartTime, Unavailable: map[int][]int{1: {1, 2}, 3: {1, 2}}},
		{ID: "M1003", SyncKey: syncKey, Name: "Kumar V", Class: models.FullTime, Unavailable: map[int][]int{7: {1, 2}}},
	}
}

func (s *DefaultRosterService) ListAgents(ctx context.Context, syncKey string) ([]models.Agent, error) {
	agents, err := s.AgentRepo.GetBySyncKey(ctx, syncKey)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	if len(agents) > 0 {
		return agents, nil
	}

	seed := defaultAgents(syncKey)
	if err := s.AgentRepo.CreateMany(ctx, seed); err != nil {
		return nil, fmt.Errorf("seed default agents: %w", err)
	}
	utils.GetLogger().Info("Seeded default agent roster", zap.String("syncKey", syncKey))
	return seed, nil
}

func (s *DefaultRosterService) CreateAgent(ctx context.Context, syncKey string, req models.CreateAgentRequest) (*models.Agent, error) {
	agent := models.Agent{
		SyncKey:     syncKey,
		Name:        req.Name,
		Class:       req.Class,
		Unavailable: map[int][]int{},
	}
	created, err := s.AgentRepo.Create(ctx, agent)
	if err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}
	return created, nil
}

func (s *DefaultRosterService) DeleteAgent(ctx context.Context, syncKey, agentID string) error {
	if err := s.AgentRepo.DeleteByID(ctx, syncKey, agentID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("%w: %s", ErrAgentNotFound, agentID)
		}
		return fmt.Errorf("delete agent: %w", err)
	}
	return nil
}

// ToggleUnavailability applies a self-service or admin availability toggle.
// The day is validated against the loaded month before anything is written,
// so a stale override leaves the directory untouched. The stored timetable
// is deliberately left as is: yanking an agent from a published schedule is
// a human decision.
func (s *DefaultRosterService) ToggleUnavailability(ctx context.Context, syncKey, agentID, month string, day, slot int) (*models.Agent, error) {
	year, m, err := ParseMonth(month)
	if err != nil {
		return nil, err
	}
	calendar, err := BuildCalendar(year, m)
	if err != nil {
		return nil, err
	}
	if day < 1 || day > len(calendar) {
		return nil, fmt.Errorf("%w: day %d not in %s", ErrStaleOverride, day, month)
	}

	agents, err := s.ListAgents(ctx, syncKey)
	if err != nil {
		return nil, err
	}
	updated, err := ToggleUnavailability(agents, agentID, day, slot)
	if err != nil {
		return nil, err
	}

	var result *models.Agent
	for i := range updated {
		if updated[i].ID == agentID {
			result = &updated[i]
			break
		}
	}
	if err := s.AgentRepo.ReplaceUnavailability(ctx, syncKey, agentID, result.Unavailable); err != nil {
		return nil, fmt.Errorf("persist unavailability: %w", err)
	}
	metrics.OverridesTotal.WithLabelValues("toggle").Inc()
	return result, nil
}

func (s *DefaultRosterService) GetTimetable(ctx context.Context, syncKey, month string) (*models.Timetable, error) {
	year, m, err := ParseMonth(month)
	if err != nil {
		return nil, err
	}

	cacheKey := timetableCacheKey(syncKey, month)
	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var tt models.Timetable
			if err := json.Unmarshal([]byte(data), &tt); err == nil {
				return &tt, nil
			}
		}
	}

	tt, err := s.TimetableRepo.Get(ctx, syncKey, month)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Nothing generated yet: serve the empty scaffold without persisting it.
		calendar, cerr := BuildCalendar(year, m)
		if cerr != nil {
			return nil, cerr
		}
		scaffold := EmptyTimetable(calendar)
		scaffold.SyncKey = syncKey
		scaffold.Month = month
		return &scaffold, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load timetable: %w", err)
	}

	s.cacheTimetable(ctx, cacheKey, tt)
	return tt, nil
}

// Generate runs the selected scheduling strategy for the month and persists
// the result, replacing any previous timetable. An AI failure of any kind
// (transport, malformed JSON, invariant violation) degrades to an empty
// timetable; the caller must re-trigger generation explicitly, there is no
// automatic retry.
func (s *DefaultRosterService) Generate(ctx context.Context, syncKey, month, strategy string) (*models.GenerateResponse, error) {
	year, m, err := ParseMonth(month)
	if err != nil {
		return nil, err
	}
	calendar, err := BuildCalendar(year, m)
	if err != nil {
		return nil, err
	}
	agents, err := s.ListAgents(ctx, syncKey)
	if err != nil {
		return nil, err
	}

	if strategy == "" {
		strategy = StrategyGreedy
	}
	scheduler := s.Engine
	if strategy == StrategyAI {
		if s.AIEngine == nil {
			return nil, fmt.Errorf("%w: no AI engine is configured", ErrStrategyUnavailable)
		}
		scheduler = s.AIEngine
	}

	fallback := false
	start := time.Now()
	tt, err := scheduler.GenerateSchedule(ctx, agents, calendar)
	metrics.EngineDurationSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		if strategy != StrategyAI {
			metrics.GenerationRunsTotal.WithLabelValues(strategy, "error").Inc()
			return nil, fmt.Errorf("generate schedule: %w", err)
		}
		utils.GetLogger().Warn("AI generation failed, falling back to empty timetable",
			zap.String("month", month), zap.Error(err))
		metrics.AIFallbacksTotal.Inc()
		tt = EmptyTimetable(calendar)
		tt.GeneratedAt = time.Now().UTC()
		fallback = true
	}

	tt.SyncKey = syncKey
	tt.Month = month
	tt.Strategy = strategy
	if fallback {
		tt.Strategy = strategy + "-fallback"
	}

	if err := s.TimetableRepo.Upsert(ctx, tt); err != nil {
		metrics.GenerationRunsTotal.WithLabelValues(strategy, "error").Inc()
		return nil, fmt.Errorf("persist timetable: %w", err)
	}
	s.invalidateTimetable(ctx, syncKey, month)

	understaffed := tt.UnderstaffedSlots()
	metrics.UnderstaffedSlots.Set(float64(len(understaffed)))
	outcome := "ok"
	if fallback {
		outcome = "fallback"
	}
	metrics.GenerationRunsTotal.WithLabelValues(strategy, outcome).Inc()

	return &models.GenerateResponse{
		Timetable:    tt,
		Understaffed: understaffed,
		Fallback:     fallback,
	}, nil
}

func (s *DefaultRosterService) DirectAssignmentEdit(ctx context.Context, syncKey, month string, day, slot int, agentIDs []string) (*models.Timetable, error) {
	year, m, err := ParseMonth(month)
	if err != nil {
		return nil, err
	}
	calendar, err := BuildCalendar(year, m)
	if err != nil {
		return nil, err
	}
	if day < 1 || day > len(calendar) {
		return nil, fmt.Errorf("%w: day %d not in %s", ErrStaleOverride, day, month)
	}

	stored, err := s.TimetableRepo.Get(ctx, syncKey, month)
	missing := errors.Is(err, mongo.ErrNoDocuments)
	if err != nil && !missing {
		return nil, fmt.Errorf("load timetable: %w", err)
	}

	base := models.Timetable{}
	if missing {
		base = EmptyTimetable(calendar)
		base.SyncKey = syncKey
		base.Month = month
	} else {
		base = *stored
	}

	edited, err := DirectAssignmentEdit(base, day, slot, agentIDs)
	if err != nil {
		return nil, err
	}

	if missing {
		if err := s.TimetableRepo.Upsert(ctx, edited); err != nil {
			return nil, fmt.Errorf("persist timetable: %w", err)
		}
	} else {
		if err := s.TimetableRepo.UpdateSlot(ctx, syncKey, month, day, slot, agentIDs); err != nil {
			return nil, fmt.Errorf("patch slot: %w", err)
		}
	}
	s.invalidateTimetable(ctx, syncKey, month)
	metrics.OverridesTotal.WithLabelValues("direct-edit").Inc()
	return &edited, nil
}

func (s *DefaultRosterService) Violations(ctx context.Context, syncKey, month string) ([]Violation, error) {
	year, m, err := ParseMonth(month)
	if err != nil {
		return nil, err
	}
	calendar, err := BuildCalendar(year, m)
	if err != nil {
		return nil, err
	}
	agents, err := s.ListAgents(ctx, syncKey)
	if err != nil {
		return nil, err
	}
	tt, err := s.GetTimetable(ctx, syncKey, month)
	if err != nil {
		return nil, err
	}
	return ValidateTimetable(agents, calendar, *tt), nil
}

func timetableCacheKey(syncKey, month string) string {
	return fmt.Sprintf("roster:%s:%s", syncKey, month)
}

func (s *DefaultRosterService) cacheTimetable(ctx context.Context, key string, tt *models.Timetable) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(tt)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, data, timetableCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("Failed to cache timetable", zap.String("key", key), zap.Error(err))
	}
}

func (s *DefaultRosterService) invalidateTimetable(ctx context.Context, syncKey, month string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, timetableCacheKey(syncKey, month)).Err(); err != nil {
		utils.GetLogger().Warn("Failed to invalidate timetable cache", zap.Error(err))
	}
}
