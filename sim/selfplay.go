package sim

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"poke-splendor/ai"
	"poke-splendor/entities"
	"poke-splendor/rules"

	"golang.org/x/exp/rand"
)

const defaultMaxTurns = 200

var ErrTurnLimit = errors.New("超过回合上限仍未分出胜负")

type BatchConfig struct {
	Games    int
	Seed     uint64
	Workers  int   // <=0 时取 CPU 核数
	AILevels []int // 每个座位的 AI 等级，决定人数
	MaxTurns int
	Library  map[int][]entities.Card
}

type GameResult struct {
	Index  int    `json:"index"`
	Seed   uint64 `json:"seed"`
	Winner int    `json:"winner"` // 座位下标，出错时为 -1
	Turns  int    `json:"turns"`
	Skips  int    `json:"skips"`
	Err    string `json:"error,omitempty"`
}

type BatchStats struct {
	Games    int     `json:"games"`
	Wins     []int   `json:"wins"`
	AvgTurns float64 `json:"avgTurns"`
	Errors   int     `json:"errors"`
	Skips    int     `json:"skips"`
}

type gameJob struct {
	index int
	seed  uint64
}

// RunBatch 用工作池并行跑 AI 对局，每局种子由批次种子推导
func RunBatch(ctx context.Context, cfg BatchConfig) (BatchStats, error) {
	if _, err := rules.PoolForPlayers(len(cfg.AILevels)); err != nil {
		return BatchStats{}, err
	}
	for _, level := range cfg.AILevels {
		if _, ok := ai.ProfileFor(level); !ok {
			return BatchStats{}, fmt.Errorf("未知 AI 等级 %d", level)
		}
	}
	if cfg.Games <= 0 {
		return BatchStats{Wins: make([]int, len(cfg.AILevels))}, nil
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	jobs := make(chan gameJob, cfg.Games)
	results := make(chan GameResult, cfg.Games)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				r := RunGame(ctx, cfg, job.seed)
				r.Index = job.index
				results <- r
			}
		}()
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	for i := 0; i < cfg.Games; i++ {
		jobs <- gameJob{index: i, seed: rng.Uint64()}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	all := make([]GameResult, 0, cfg.Games)
	for r := range results {
		all = append(all, r)
	}
	if err := ctx.Err(); err != nil {
		return Aggregate(all, len(cfg.AILevels)), err
	}
	return Aggregate(all, len(cfg.AILevels)), nil
}

// RunGame 跑完一整局，所有座位都由 AI 驱动
func RunGame(ctx context.Context, cfg BatchConfig, seed uint64) GameResult {
	result := GameResult{Seed: seed, Winner: -1}
	maxTurns := cfg.MaxTurns
	if maxTurns <= 0 {
		maxTurns = defaultMaxTurns
	}

	seats := make([]rules.Seat, len(cfg.AILevels))
	for i, level := range cfg.AILevels {
		seats[i] = rules.Seat{ID: fmt.Sprintf("ai-%d", i), Name: fmt.Sprintf("AI %d", i+1), AILevel: level}
	}
	env := NewEnv(cfg.Library)
	if err := env.Reset(seed, seats); err != nil {
		result.Err = err.Error()
		return result
	}
	s := env.State()
	driver := ai.NewDriver(rand.New(rand.NewSource(seed + 1)))

	for !env.Done() {
		if s.Turn > maxTurns {
			result.Err = ErrTurnLimit.Error()
			break
		}
		seat, turn := s.CurrentPlayerIndex, s.Turn
		steps, err := driver.RunTurn(ctx, s)
		for _, st := range steps {
			if st.Kind == ai.StepForcedSkip {
				result.Skips++
			}
		}
		if err != nil {
			result.Err = err.Error()
			break
		}
		if !env.Done() && seat == s.CurrentPlayerIndex && turn == s.Turn {
			result.Err = fmt.Sprintf("座位 %d 的回合没有推进", seat)
			break
		}
	}

	result.Turns = s.Turn
	if env.Done() && len(s.Ranking) > 0 {
		result.Winner = s.Ranking[0].PlayerIndex
	}
	return result
}

// Aggregate 汇总胜场、平均回合数、出错局数和强制跳过次数
func Aggregate(results []GameResult, seats int) BatchStats {
	stats := BatchStats{Games: len(results), Wins: make([]int, seats)}
	finished, turns := 0, 0
	for _, r := range results {
		stats.Skips += r.Skips
		if r.Err != "" || r.Winner < 0 || r.Winner >= seats {
			stats.Errors++
			continue
		}
		stats.Wins[r.Winner]++
		finished++
		turns += r.Turns
	}
	if finished > 0 {
		stats.AvgTurns = float64(turns) / float64(finished)
	}
	return stats
}
