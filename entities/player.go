package entities

type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AILevel   int    `json:"aiLevel"` // -1 表示真人
	IsStarter bool   `json:"isStarter"`
	Hand      []Card `json:"hand"`
	Reserved  []Card `json:"reserved"`
	Tokens    Tokens `json:"tokens"`
	// Stacks 进化链：key 为手牌中当前形态的卡牌 ID，value 为被叠在下面的前置形态
	Stacks map[string][]Card `json:"stacks,omitempty"`
}

func (p *Player) IsHuman() bool { return p.AILevel < 0 }

// StackOf 返回某张手牌下叠放的进化前形态
func (p *Player) StackOf(cardID string) []Card {
	if p.Stacks == nil {
		return nil
	}
	return p.Stacks[cardID]
}

func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	out := *p
	out.Hand = CloneCards(p.Hand)
	out.Reserved = CloneCards(p.Reserved)
	if p.Stacks != nil {
		out.Stacks = make(map[string][]Card, len(p.Stacks))
		for id, stack := range p.Stacks {
			out.Stacks[id] = CloneCards(stack)
		}
	}
	return &out
}
