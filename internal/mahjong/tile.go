package mahjong

import (
	"fmt"
	"sort"
)

// Suit 牌的花色
type Suit int8

const (
	SuitCharacter Suit = iota // 万
	SuitCircle                // 筒
	SuitBamboo                // 条
	SuitHonor                 // 字牌 (东南西北中发白)
)

// String 返回花色的字符串表示 (同时作为线上协议中的花色名)
func (s Suit) String() string {
	switch s {
	case SuitCharacter:
		return "character"
	case SuitCircle:
		return "circle"
	case SuitBamboo:
		return "bamboo"
	case SuitHonor:
		return "honor"
	default:
		return "unknown"
	}
}

// Tile 麻将牌
// 值对象，创建后不可变
type Tile struct {
	Suit    Suit `json:"suit"`
	Rank    int8 `json:"rank"`    // 数牌 1-9, 字牌 1-7
	IsBonus bool `json:"isBonus"` // 赤牌等奖励标记，当前不影响行牌
}

// String 返回牌的字符串表示
func (t Tile) String() string {
	return fmt.Sprintf("%s-%d", t.Suit, t.Rank)
}

// Equal 判断两张牌是否相同
func (t Tile) Equal(other Tile) bool {
	return t.Suit == other.Suit && t.Rank == other.Rank && t.IsBonus == other.IsBonus
}

// Less 牌的标准排序: 先按花色 (万<筒<条<字), 再按数值
func (t Tile) Less(other Tile) bool {
	if t.Suit != other.Suit {
		return t.Suit < other.Suit
	}
	return t.Rank < other.Rank
}

// SortTiles 按标准顺序对牌排序 (手牌的规范顺序)
func SortTiles(tiles []Tile) {
	sort.Slice(tiles, func(i, j int) bool {
		return tiles[i].Less(tiles[j])
	})
}

// CloneTiles 克隆牌组
func CloneTiles(tiles []Tile) []Tile {
	result := make([]Tile, len(tiles))
	copy(result, tiles)
	return result
}
