package ws

import (
	"context"
	"time"

	"poke-splendor/ai"
	"poke-splendor/entities"
	"poke-splendor/logger"

	"golang.org/x/exp/rand"
)

// MaybeRunAIIfNeeded 当前座位是 AI 时在协程中跑完它的回合，同一房间同时只跑一个
func MaybeRunAIIfNeeded(roomID string) bool {
	s, err := GetGameState(roomID)
	if err != nil || s.VictoryResolved {
		return false
	}
	cur := s.CurrentPlayer()
	if cur == nil || cur.IsHuman() {
		return false
	}
	rt := runtimeOf(roomID)
	if !rt.aiBusy.CompareAndSwap(false, true) {
		return false
	}

	logger.L.Debugw("🤖 轮到 AI 行动", "roomID", roomID, "playerID", cur.ID, "level", cur.AILevel)
	go func() {
		runAITurn(rt, roomID)
		rt.aiBusy.Store(false)
		if rt.ctx.Err() == nil {
			BroadcastToRoom(roomID)
		}
	}()
	return true
}

func runAITurn(rt *roomRuntime, roomID string) {
	rt.game.Lock()
	defer rt.game.Unlock()

	s, err := GetGameState(roomID)
	if err != nil {
		logger.L.Errorw("❌ AI 读取对局状态失败", "roomID", roomID, "err", err)
		return
	}
	if cur := s.CurrentPlayer(); cur == nil || cur.IsHuman() || s.VictoryResolved {
		return
	}

	driver := ai.NewDriver(rand.New(rand.NewSource(uint64(time.Now().UnixNano()))))
	driver.Pace = func(ctx context.Context, s *entities.GameState, step ai.Step) error {
		if err := SetGameState(roomID, s); err != nil {
			return err
		}
		recordAIStep(roomID, s, step)
		BroadcastToRoom(roomID)
		return sleepCtx(ctx, settings.AIDelay)
	}

	steps, err := driver.RunTurn(rt.ctx, s)
	if rt.ctx.Err() != nil {
		return
	}
	if err != nil {
		logger.L.Errorw("❌ AI 回合异常结束", "roomID", roomID, "steps", len(steps), "err", err)
	}
	if err := SetGameState(roomID, s); err != nil {
		logger.L.Errorw("❌ 保存对局状态失败", "roomID", roomID, "err", err)
		return
	}
	if s.VictoryResolved {
		finishGame(roomID, s)
	}
}

func recordAIStep(roomID string, s *entities.GameState, step ai.Step) {
	if step.Seat < 0 || step.Seat >= len(s.Players) {
		return
	}
	var payload interface{} = step.Decision
	if step.Kind == ai.StepReturnTokens {
		payload = step.Returned
	}
	if err := SetLastData(roomID, s.Players[step.Seat].ID, string(step.Kind), payload); err != nil {
		logger.L.Warnw("⚠️ 保存 AI 操作失败", "roomID", roomID, "err", err)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
