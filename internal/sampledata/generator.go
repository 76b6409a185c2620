// Package sampledata generates deterministic synthetic recognition events.
package sampledata

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/okian/rrdash/internal/domain/model"
)

// Config controls the shape of a generated dataset.
type Config struct {
	Rows      int
	Seed      uint64
	Start     time.Time // first day
	Days      int       // dates are spread over [Start, Start+Days)
	Users     int
	Companies []string
	Countries []string
	FeedTypes []string // the first entry is drawn most often
}

// DefaultConfig returns a month of events across a handful of companies.
func DefaultConfig() Config {
	return Config{
		Rows:      1000,
		Seed:      1,
		Start:     time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		Days:      30,
		Users:     200,
		Companies: []string{"Globex", "Initech", "Hooli", "Umbrella", "Stark Industries", "Wayne Enterprises", "Acme"},
		Countries: []string{"India", "United States", "Canada", "Germany", "Brazil", "Japan", "Kenya", "Australia"},
		FeedTypes: []string{"Award", "Kudos", "Shoutout", "Milestone"},
	}
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case c.Rows < 0:
		return fmt.Errorf("%w: rows must not be negative", ErrInvalidConfig)
	case c.Days < 1:
		return fmt.Errorf("%w: days must be positive", ErrInvalidConfig)
	case c.Users < 2:
		return fmt.Errorf("%w: at least two users are needed", ErrInvalidConfig)
	case len(c.Companies) == 0 || len(c.Countries) == 0 || len(c.FeedTypes) == 0:
		return fmt.Errorf("%w: companies, countries and feed types must not be empty", ErrInvalidConfig)
	}
	return nil
}

// Point bands, low to high. Ordinary recognitions dominate; large awards are rare.
const (
	caseSmall = iota
	caseMedium
	caseLarge
	caseBonus
	caseRare
	caseSpread
	bandCount
)

type user struct {
	id      string
	company string
	country string
}

// Generator produces the same events for the same Config.
type Generator struct {
	cfg   Config
	rng   *rand.Rand
	users []user
}

// New returns a Generator for cfg.
func New(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}
	g.users = make([]user, cfg.Users)
	for i := range g.users {
		g.users[i] = user{
			id:      fmt.Sprintf("u%05d", i+1),
			company: cfg.Companies[g.rng.IntN(len(cfg.Companies))],
			country: cfg.Countries[g.rng.IntN(len(cfg.Countries))],
		}
	}
	return g, nil
}

// Events generates cfg.Rows events ordered by date.
func (g *Generator) Events(ctx context.Context) ([]model.Event, error) {
	events := make([]model.Event, 0, g.cfg.Rows)
	for i := 0; i < g.cfg.Rows; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("generate events: %w", err)
			}
		}
		events = append(events, g.event(i))
	}
	return events, nil
}

func (g *Generator) event(i int) model.Event {
	sender := g.users[g.rng.IntN(len(g.users))]
	receiver := g.users[g.rng.IntN(len(g.users))]
	for receiver.id == sender.id {
		receiver = g.users[g.rng.IntN(len(g.users))]
	}
	// Rows advance through the days so the file reads chronologically.
	day := i * g.cfg.Days / max(g.cfg.Rows, 1)
	date := g.cfg.Start.AddDate(0, 0, day)
	return model.Event{
		SenderID:   sender.id,
		ReceiverID: receiver.id,
		Company:    sender.company,
		Country:    sender.country,
		Points:     g.points(),
		Date:       date,
		RawDate:    date.Format(model.DateLayout),
		FeedType:   g.feedType(),
	}
}

func (g *Generator) points() float64 {
	switch g.rng.IntN(bandCount) {
	case caseSmall:
		return float64(5 + g.rng.IntN(20))
	case caseMedium:
		return float64(25 + g.rng.IntN(75))
	case caseLarge:
		return float64(100 + g.rng.IntN(150))
	case caseBonus:
		return float64(250 + g.rng.IntN(250))
	case caseRare:
		return float64(500 + g.rng.IntN(1000))
	default:
		return float64(5 + g.rng.IntN(495))
	}
}

// feedType picks the first feed type half of the time.
func (g *Generator) feedType() string {
	ft := g.cfg.FeedTypes
	if len(ft) == 1 || g.rng.IntN(2) == 0 {
		return ft[0]
	}
	return ft[1+g.rng.IntN(len(ft)-1)]
}
