package entities

type CostItem struct {
	Color  Ball `json:"ball_color"`
	Number int  `json:"number"`
}

type Reward struct {
	Color  Ball `json:"ball_color"`
	Number int  `json:"number"`
}

// Evolution 进化目标（按卡名匹配）与单色进化费用
type Evolution struct {
	Name string   `json:"name"`
	Cost CostItem `json:"cost"`
}

type Card struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Level     int        `json:"level"` // 1-3 普通，4 稀有，5 传说
	Point     int        `json:"point"` // 奖杯，可为负（惩罚卡）
	Cost      []CostItem `json:"cost"`
	Reward    *Reward    `json:"reward,omitempty"`
	Evolution *Evolution `json:"evolution,omitempty"`
}

func (c Card) Clone() Card {
	out := c
	if c.Cost != nil {
		out.Cost = make([]CostItem, len(c.Cost))
		copy(out.Cost, c.Cost)
	}
	if c.Reward != nil {
		r := *c.Reward
		out.Reward = &r
	}
	if c.Evolution != nil {
		e := *c.Evolution
		out.Evolution = &e
	}
	return out
}

// Need 把费用列表折算成按颜色的需求
func (c Card) Need() Tokens {
	var need Tokens
	for _, item := range c.Cost {
		if item.Color.Valid() {
			need[item.Color] += item.Number
		}
	}
	return need
}

func (c Card) CostTotal() int {
	total := 0
	for _, item := range c.Cost {
		total += item.Number
	}
	return total
}

func (c Card) RewardNumber() int {
	if c.Reward == nil {
		return 0
	}
	return c.Reward.Number
}

func (c Card) IsRareOrLegend() bool { return c.Level >= LevelRare }

func CloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[i] = c.Clone()
	}
	return out
}
