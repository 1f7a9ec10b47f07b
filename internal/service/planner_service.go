package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sawa-travel/marketplace/internal/models"
	"github.com/sawa-travel/marketplace/internal/repository"
	"github.com/sawa-travel/marketplace/pkg/jsonrepair"
)

// TextGenerator is the single operation consumed from the text-generation
// endpoint. pkg/llm implements it.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, schemaHint json.RawMessage, webContext bool) (string, error)
}

type PlanRequest struct {
	CityName  string
	StartDate time.Time
	EndDate   time.Time
	Adults    int
	Children  int
	Interests []string
}

type Itinerary struct {
	City    string         `json:"city"`
	Summary string         `json:"summary"`
	Days    []ItineraryDay `json:"days"`
}

type ItineraryDay struct {
	Day        int      `json:"day"`
	Title      string   `json:"title"`
	Activities []string `json:"activities"`
}

// PlanResult carries the itinerary plus how it was obtained, so the caller
// can show the "using backup plan" notice instead of a raw parse error.
type PlanResult struct {
	Itinerary Itinerary `json:"itinerary"`
	Fallback  bool      `json:"fallback"`
	FromCache bool      `json:"from_cache"`
}

var itinerarySchema = json.RawMessage(`{
	"type": "object",
	"required": ["city", "days"],
	"properties": {
		"city": {"type": "string"},
		"summary": {"type": "string"},
		"days": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["day", "title", "activities"],
				"properties": {
					"day": {"type": "integer"},
					"title": {"type": "string"},
					"activities": {"type": "array", "items": {"type": "string"}}
				}
			}
		}
	}
}`)

type PlannerService interface {
	GenerateItinerary(ctx context.Context, req PlanRequest) (*PlanResult, error)
}

type plannerService struct {
	generator TextGenerator
	aiRepo    repository.AIRepository
}

func NewPlannerService(generator TextGenerator, aiRepo repository.AIRepository) PlannerService {
	return &plannerService{generator: generator, aiRepo: aiRepo}
}

// GenerateItinerary asks the text-generation endpoint for a day-by-day plan
// and recovers a JSON object from whatever comes back. An unrecoverable
// response falls back to the deterministic synthetic itinerary; a transport
// failure is returned as an error. No retry around the parse layer.
func (s *plannerService) GenerateItinerary(ctx context.Context, req PlanRequest) (*PlanResult, error) {
	prompt := buildPrompt(req)
	hash := promptHash(prompt)

	if cached, err := s.aiRepo.GetCached(ctx, hash); err == nil {
		var it Itinerary
		if err := json.Unmarshal([]byte(cached.Response), &it); err == nil {
			return &PlanResult{Itinerary: it, FromCache: true}, nil
		}
	}

	start := time.Now()
	raw, err := s.generator.Generate(ctx, prompt, itinerarySchema, true)
	if err != nil {
		s.logInvocation(ctx, prompt, false, false, start, err)
		return nil, fmt.Errorf("generate itinerary: %w", err)
	}

	repaired := !json.Valid([]byte(strings.TrimSpace(raw)))

	obj, err := jsonrepair.Extract(raw)
	if err != nil {
		if errors.Is(err, jsonrepair.ErrUnrecoverable) || errors.Is(err, jsonrepair.ErrEmptyInput) {
			s.logInvocation(ctx, prompt, repaired, true, start, err)
			return &PlanResult{Itinerary: syntheticItinerary(req), Fallback: true}, nil
		}
		return nil, err
	}

	var it Itinerary
	canonical, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(canonical, &it); err != nil || len(it.Days) == 0 {
		// Parsed fine but not itinerary-shaped; same fallback path.
		s.logInvocation(ctx, prompt, repaired, true, start, err)
		return &PlanResult{Itinerary: syntheticItinerary(req), Fallback: true}, nil
	}
	if it.City == "" {
		it.City = req.CityName
	}

	s.logInvocation(ctx, prompt, repaired, false, start, nil)

	if err := s.aiRepo.PutCached(ctx, &models.AICache{PromptHash: hash, Response: string(canonical)}); err != nil {
		log.Printf("[Planner] cache write failed: %v", err)
	}

	return &PlanResult{Itinerary: it}, nil
}

func (s *plannerService) logInvocation(ctx context.Context, prompt string, repaired, fallback bool, start time.Time, cause error) {
	entry := &models.AILog{
		Kind:       "itinerary",
		Prompt:     prompt,
		Repaired:   repaired,
		Fallback:   fallback,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if cause != nil {
		entry.Error = cause.Error()
	}
	if err := s.aiRepo.Log(ctx, entry); err != nil {
		log.Printf("[Planner] log write failed: %v", err)
	}
}

func buildPrompt(req PlanRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Plan a trip to %s from %s to %s for %d adults",
		req.CityName,
		req.StartDate.Format("2006-01-02"),
		req.EndDate.Format("2006-01-02"),
		req.Adults,
	)
	if req.Children > 0 {
		fmt.Fprintf(&b, " and %d children", req.Children)
	}
	b.WriteString(".")
	if len(req.Interests) > 0 {
		fmt.Fprintf(&b, " The travelers are interested in: %s.", strings.Join(req.Interests, ", "))
	}
	b.WriteString(" Respond with a single JSON object only, matching the provided schema:" +
		" a city, a short summary, and one entry per day with a title and a list of activities.")
	return b.String()
}

func promptHash(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

// syntheticItinerary is the deterministic backup plan: one generic day per
// trip day, capped at seven.
func syntheticItinerary(req PlanRequest) Itinerary {
	days := int(req.EndDate.Sub(req.StartDate).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	if days > 7 {
		days = 7
	}

	it := Itinerary{
		City:    req.CityName,
		Summary: fmt.Sprintf("A %d-day visit to %s.", days, req.CityName),
	}
	for d := 1; d <= days; d++ {
		it.Days = append(it.Days, ItineraryDay{
			Day:   d,
			Title: fmt.Sprintf("Day %d in %s", d, req.CityName),
			Activities: []string{
				"Morning walk through the city center",
				"Lunch at a local restaurant",
				"Afternoon visit to a nearby landmark",
			},
		})
	}
	return it
}
