package entities

// Ball 精灵球标记颜色
type Ball int

const (
	BallPoke   Ball = iota // 精灵球
	BallHeal               // 治愈球
	BallGreat              // 超级球
	BallQuick              // 先机球
	BallUltra              // 高级球
	BallMaster             // 大师球，万能标记
)

const BallCount = 6

// RegularBalls 五种普通颜色（不含大师球）
var RegularBalls = []Ball{BallPoke, BallHeal, BallGreat, BallQuick, BallUltra}

var ballNames = [BallCount]string{"精灵球", "治愈球", "超级球", "先机球", "高级球", "大师球"}

var ballKeys = [BallCount]string{"poke_ball", "heal_ball", "great_ball", "quick_ball", "ultra_ball", "master_ball"}

func (b Ball) Valid() bool { return b >= BallPoke && b <= BallMaster }

func (b Ball) Regular() bool { return b >= BallPoke && b < BallMaster }

func (b Ball) Name() string {
	if !b.Valid() {
		return "未知"
	}
	return ballNames[b]
}

func (b Ball) Key() string {
	if !b.Valid() {
		return ""
	}
	return ballKeys[b]
}

// Tokens 按颜色计数，下标即 Ball
type Tokens [BallCount]int

func (t Tokens) Total() int {
	sum := 0
	for _, n := range t {
		sum += n
	}
	return sum
}

func (t Tokens) Add(o Tokens) Tokens {
	for i := range t {
		t[i] += o[i]
	}
	return t
}
