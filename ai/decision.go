package ai

import "poke-splendor/entities"

type Kind string

const (
	KindBuy     Kind = "buy"
	KindEvolve  Kind = "evolve"
	KindReserve Kind = "reserve"
	KindTake3   Kind = "take3"
	KindTake2   Kind = "take2"
)

type Source string

const (
	SourceMarket   Source = "market"
	SourceReserved Source = "reserved"
)

// Target 决策作用的卡
type Target struct {
	Source Source
	Level  int
	Card   *entities.Card
}

type PlanMeta struct {
	RevealNext     *entities.Card // 买走/保留后会翻出的下一张
	OpponentThreat bool
	Overflow       bool // 执行后会超过 10 个标记
}

// Decision 一个候选行动
type Decision struct {
	Kind   Kind
	Target *Target
	Colors []entities.Ball
	Score  float64
	Meta   PlanMeta
}

func (d *Decision) card() *entities.Card {
	if d == nil || d.Target == nil {
		return nil
	}
	return d.Target.Card
}

func (d *Decision) String() string {
	if d == nil {
		return "<nil>"
	}
	if c := d.card(); c != nil {
		return string(d.Kind) + ":" + c.ID
	}
	s := string(d.Kind)
	for _, c := range d.Colors {
		s += ":" + c.Key()
	}
	return s
}
