package ai

// Visibility AI 能看到的信息范围
type Visibility string

const (
	VisibilitySelfOnly  Visibility = "self_only"  // 展示区 + 自己
	VisibilityStandard  Visibility = "standard"   // 与真人相同，所有玩家公开信息
	VisibilityLevel1Seq Visibility = "level1_seq" // 额外知道 1 级牌堆顺序
	VisibilityFullSeq   Visibility = "full_seq"   // 知道所有牌堆顺序
)

type Constraints struct {
	CanBlock            bool
	CanPreemptReserve   bool
	AggressiveMaster    bool
	MustKeepReserveSlot bool
}

// Profile 一个难度档位
type Profile struct {
	Level            int
	Label            string
	Visibility       Visibility
	Depth            int
	Constraints      Constraints
	AllowedSacrifice int
	PreferCapture    bool
}

var profiles = []Profile{
	{
		Level:            0,
		Label:            "入门",
		Visibility:       VisibilitySelfOnly,
		Depth:            1,
		Constraints:      Constraints{MustKeepReserveSlot: true},
		AllowedSacrifice: 0,
	},
	{
		Level:            1,
		Label:            "简单",
		Visibility:       VisibilityStandard,
		Depth:            1,
		Constraints:      Constraints{CanBlock: true, MustKeepReserveSlot: true},
		AllowedSacrifice: 1,
	},
	{
		Level:            2,
		Label:            "标准",
		Visibility:       VisibilityStandard,
		Depth:            2,
		Constraints:      Constraints{CanBlock: true, CanPreemptReserve: true, AggressiveMaster: true},
		AllowedSacrifice: 1,
	},
	{
		Level:            3,
		Label:            "进阶",
		Visibility:       VisibilityLevel1Seq,
		Depth:            3,
		Constraints:      Constraints{CanBlock: true, CanPreemptReserve: true, AggressiveMaster: true},
		AllowedSacrifice: 2,
		PreferCapture:    true,
	},
	{
		Level:            4,
		Label:            "大师",
		Visibility:       VisibilityFullSeq,
		Depth:            4,
		Constraints:      Constraints{CanBlock: true, CanPreemptReserve: true, AggressiveMaster: true},
		AllowedSacrifice: 3,
		PreferCapture:    true,
	},
}

// ProfileFor 负数表示真人；超出范围按最高难度处理
func ProfileFor(level int) (Profile, bool) {
	if level < 0 {
		return Profile{}, false
	}
	if level >= len(profiles) {
		return profiles[len(profiles)-1], true
	}
	return profiles[level], true
}

// Profiles 所有档位，供前端展示难度列表
func Profiles() []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	return out
}
