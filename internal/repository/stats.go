package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const (
	statsKey = "stats"

	fieldXWins = "x_wins"
	fieldOWins = "o_wins"
	fieldTies  = "ties"
)

type StatsRepository interface {
	Record(ctx context.Context, result entity.Result) error
	Get(ctx context.Context) (*entity.Stats, error)
}

type dbStats struct {
	client *redis.Client
}

func NewStatsRepository(client *redis.Client) StatsRepository {
	return &dbStats{
		client: client,
	}
}

// Record increments the counter of a finished result. Unfinished results are ignored.
func (that *dbStats) Record(ctx context.Context, result entity.Result) error {
	var field string

	switch {
	case result.Outcome == entity.OutcomeTie:
		field = fieldTies
	case result.Outcome == entity.OutcomeWin && result.Winner == entity.PlayerX:
		field = fieldXWins
	case result.Outcome == entity.OutcomeWin && result.Winner == entity.PlayerO:
		field = fieldOWins
	default:
		return nil
	}

	if err := that.client.HIncrBy(ctx, statsKey, field, 1).Err(); err != nil {
		return fmt.Errorf("failed to record %s: %w", field, err)
	}

	return nil
}

func (that *dbStats) Get(ctx context.Context) (*entity.Stats, error) {
	var stats entity.Stats
	if err := that.client.HGetAll(ctx, statsKey).Scan(&stats); err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return &stats, nil
}
