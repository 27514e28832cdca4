package i18n

import (
	"fmt"
	"sort"
	"strings"
)

// Formatter rewrites display text. Implementations must be pure.
type Formatter interface {
	Format(text string) string
}

type identity struct{}

func (identity) Format(text string) string {
	return text
}

var Identity Formatter = identity{}

// Vocabulary substitutes known phrases. Longer phrases win over their prefixes,
// so landlord_up is never rewritten as landlord + _up.
type Vocabulary struct {
	replacer *strings.Replacer
}

func NewVocabulary(words map[string]string) *Vocabulary {
	keys := make([]string, 0, len(words))
	for k := range words {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, k, words[k])
	}
	return &Vocabulary{replacer: strings.NewReplacer(pairs...)}
}

func (v *Vocabulary) Format(text string) string {
	return v.replacer.Replace(text)
}

var Chinese = map[string]string{
	"Game over. Winner: ":                  "游戏结束，胜者：",
	"Your turn.":                           "轮到你出牌。",
	"Please input opponents' action.":      "请输入对手的出牌。",
	"Please start a game first.":           "请先开始游戏。",
	"Enter an action, or click PASS.":      "请输入出牌，或点击不要。",
	"No recommendation available.":         "暂无推荐。",
	"Invalid action: ":                     "无效出牌：",
	"Submit failed: ":                      "提交失败：",
	". Please submit again.":               "。请重新提交。",
	"Start failed: ":                       "开局失败：",
	"Undo failed: ":                        "撤销失败：",
	"Refresh failed: ":                     "刷新失败：",
	"Please reconfigure the opening hand.": "请重新配置开局信息。",
	"No actions yet":                       "暂无出牌",
	"Unavailable: ":                        "不可用：",
	"Role:":                                "身份：",
	"Your hand:":                           "你的手牌：",
	"Landlord cards:":                      "底牌：",
	"landlord_down":                        "地主下家",
	"landlord_up":                          "地主上家",
	"landlord":                             "地主",
	"farmer":                               "农民",
	"PASS":                                 "不要",

	"A game is in progress. Type quit again to leave.": "对局进行中，再次输入 quit 退出。",

	"Type start <role> and enter the cards when asked, or separate them with |.": "输入 start <身份> 后按提示输入牌，或用 | 分隔。",
}

// ByLanguage returns the formatter for a language tag.
func ByLanguage(lang string) (Formatter, error) {
	switch strings.ToLower(lang) {
	case "", "en":
		return Identity, nil
	case "zh", "zh-cn":
		return NewVocabulary(Chinese), nil
	}
	return nil, fmt.Errorf("unsupported language '%s'", lang)
}
