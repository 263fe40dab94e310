package const_data

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"poke-splendor/entities"
)

//go:embed cards.json
var defaultCards []byte

// Library 卡牌库，字段与 cards.json 对应
type Library struct {
	Level1 []entities.Card `json:"level_1"`
	Level2 []entities.Card `json:"level_2"`
	Level3 []entities.Card `json:"level_3"`
	Rare   []entities.Card `json:"rare"`
	Legend []entities.Card `json:"legend"`
}

// DefaultLibrary 内置卡牌库
func DefaultLibrary() (*Library, error) {
	return ParseLibrary(defaultCards)
}

// LoadLibrary 从文件加载卡牌库，path 为空时使用内置卡牌
func LoadLibrary(path string) (*Library, error) {
	if path == "" {
		return DefaultLibrary()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取卡牌库失败: %w", err)
	}
	return ParseLibrary(data)
}

func ParseLibrary(data []byte) (*Library, error) {
	var lib Library
	if err := json.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("卡牌库解析失败: %w", err)
	}
	if len(lib.Level1) == 0 {
		return nil, fmt.Errorf("卡牌库缺少 1 级卡牌")
	}
	return &lib, nil
}

// ByLevel 按等级拆分，补齐缺失的 level 和 id
func (l *Library) ByLevel() map[int][]entities.Card {
	groups := map[int][]entities.Card{
		entities.LevelOne:    l.Level1,
		entities.LevelTwo:    l.Level2,
		entities.LevelThree:  l.Level3,
		entities.LevelRare:   l.Rare,
		entities.LevelLegend: l.Legend,
	}
	out := make(map[int][]entities.Card, len(groups))
	for level, cards := range groups {
		normalized := make([]entities.Card, 0, len(cards))
		for idx, c := range cards {
			card := c.Clone()
			if card.Level == 0 {
				card.Level = level
			}
			if card.ID == "" {
				card.ID = fmt.Sprintf("%d-%d", level, idx)
			}
			normalized = append(normalized, card)
		}
		out[level] = normalized
	}
	return out
}

func (l *Library) Size() int {
	return len(l.Level1) + len(l.Level2) + len(l.Level3) + len(l.Rare) + len(l.Legend)
}
