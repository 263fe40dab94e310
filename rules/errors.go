package rules

import "errors"

var (
	ErrPrimaryLocked    = errors.New("本回合已执行主要行动")
	ErrEvolveLocked     = errors.New("本回合已完成一次进化")
	ErrReturnPending    = errors.New("需要先归还多余的精灵球标记")
	ErrCannotAfford     = errors.New("精灵球标记不足")
	ErrReserveFull      = errors.New("保留区已满且没有可拿的大师球精灵球标记")
	ErrNotReservable    = errors.New("稀有或传说卡牌不能被保留")
	ErrCardNotFound     = errors.New("选择的卡不在展示区或保留区")
	ErrInvalidSelection = errors.New("精灵球标记选择不合法")
	ErrNoPrimaryAction  = errors.New("请先完成本回合的主要行动再结束回合")
	ErrGameOver         = errors.New("游戏已结算")
	ErrNoEvolutionBase  = errors.New("该卡牌无法进化你的任何手牌")
	ErrInvalidState     = errors.New("游戏状态不合法")
	ErrPlayerCount      = errors.New("玩家人数必须为 2-4 人")
)
