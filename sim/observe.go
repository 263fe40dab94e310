package sim

import (
	"fmt"

	"poke-splendor/entities"
	"poke-splendor/rules"
	"poke-splendor/sim/obsframe"

	flatbuffers "github.com/google/flatbuffers/go"
)

// CardFeatures 单张卡编码长度：等级、奖杯、6 色费用、6 色奖励
const CardFeatures = 2 + 2*entities.BallCount

// EncodeCard 把卡编码成定长向量，空卡全 0
func EncodeCard(c *entities.Card) []int16 {
	out := make([]int16, CardFeatures)
	if c == nil {
		return out
	}
	out[0] = int16(c.Level)
	out[1] = int16(c.Point)
	need := c.Need()
	for i := 0; i < entities.BallCount; i++ {
		out[2+i] = int16(need[i])
	}
	if c.Reward != nil && c.Reward.Color.Valid() {
		out[2+entities.BallCount+int(c.Reward.Color)] = int16(c.Reward.Number)
	}
	return out
}

// Observation 某个座位视角下的观测
type Observation struct {
	Turn          int     `json:"turn"`
	CurrentPlayer int     `json:"currentPlayer"`
	PlayerIndex   int     `json:"playerIndex"`
	Features      []int16 `json:"features"`
}

// Observe 编码顺序：自己的标记、奖励、奖杯、手牌数，展示区按等级逐格，保留区补齐 3 格
func (e *Env) Observe(playerIdx int) (Observation, error) {
	s := e.state
	if s == nil {
		return Observation{}, ErrNotStarted
	}
	if playerIdx < 0 || playerIdx >= len(s.Players) {
		return Observation{}, fmt.Errorf("%w: 座位 %d 不存在", rules.ErrInvalidState, playerIdx)
	}
	p := s.Players[playerIdx]

	var f []int16
	for _, n := range p.Tokens {
		f = append(f, int16(n))
	}
	for _, n := range rules.RewardBonuses(p) {
		f = append(f, int16(n))
	}
	f = append(f, int16(rules.TotalTrophies(p)), int16(len(p.Hand)))

	for _, level := range entities.Levels {
		slots := s.Market[level]
		for i := 0; i < entities.MarketSlotSizes[level]; i++ {
			var c *entities.Card
			if i < len(slots) {
				c = slots[i]
			}
			f = append(f, EncodeCard(c)...)
		}
	}
	for i := 0; i < entities.MaxReserved; i++ {
		var c *entities.Card
		if i < len(p.Reserved) {
			c = &p.Reserved[i]
		}
		f = append(f, EncodeCard(c)...)
	}

	return Observation{
		Turn:          s.Turn,
		CurrentPlayer: s.CurrentPlayerIndex,
		PlayerIndex:   playerIdx,
		Features:      f,
	}, nil
}

// FeatureSize 观测向量的固定长度
func FeatureSize() int {
	slots := 0
	for _, level := range entities.Levels {
		slots += entities.MarketSlotSizes[level]
	}
	return 2*entities.BallCount + 2 + (slots+entities.MaxReserved)*CardFeatures
}

// MarshalFrame 把观测写成 flatbuffers 帧
func (o Observation) MarshalFrame() []byte {
	builder := flatbuffers.NewBuilder(64 + 2*len(o.Features))

	obsframe.ObservationStartFeaturesVector(builder, len(o.Features))
	for i := len(o.Features) - 1; i >= 0; i-- {
		builder.PrependInt16(o.Features[i])
	}
	features := builder.EndVector(len(o.Features))

	obsframe.ObservationStart(builder)
	obsframe.ObservationAddTurn(builder, int32(o.Turn))
	obsframe.ObservationAddCurrentPlayer(builder, int32(o.CurrentPlayer))
	obsframe.ObservationAddPlayerIndex(builder, int32(o.PlayerIndex))
	obsframe.ObservationAddFeatures(builder, features)
	builder.Finish(obsframe.ObservationEnd(builder))
	return builder.FinishedBytes()
}

// ParseFrame 解析 MarshalFrame 的输出
func ParseFrame(buf []byte) (obs Observation, err error) {
	if len(buf) < flatbuffers.SizeUOffsetT {
		return Observation{}, fmt.Errorf("观测帧过短: %d 字节", len(buf))
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("观测帧损坏: %v", r)
		}
	}()
	fb := obsframe.GetRootAsObservation(buf, 0)
	obs = Observation{
		Turn:          int(fb.Turn()),
		CurrentPlayer: int(fb.CurrentPlayer()),
		PlayerIndex:   int(fb.PlayerIndex()),
		Features:      make([]int16, fb.FeaturesLength()),
	}
	for i := range obs.Features {
		obs.Features[i] = fb.Features(i)
	}
	return obs, nil
}
