package mahjong

import "math/rand"

const (
	// WallSize 牌墙总数 (数牌 3花色×9×4 + 字牌 7×4)
	WallSize = 136

	// DeadWallSize 王牌数量，开局时从牌墙尾部划出
	DeadWallSize = 14

	numberedRankMax = 9
	honorRankMax    = 7
)

// Wall 牌墙
// 有序、可消耗的摸牌来源，每局开始时生成并洗牌一次
type Wall struct {
	tiles []Tile
}

// NewWall 生成固定 136 张的牌墙并洗牌
func NewWall(rng *rand.Rand) *Wall {
	tiles := make([]Tile, 0, WallSize)

	for _, suit := range []Suit{SuitCharacter, SuitCircle, SuitBamboo} {
		for rank := int8(1); rank <= numberedRankMax; rank++ {
			for count := 0; count < 4; count++ {
				tiles = append(tiles, Tile{Suit: suit, Rank: rank})
			}
		}
	}

	for rank := int8(1); rank <= honorRankMax; rank++ {
		for count := 0; count < 4; count++ {
			tiles = append(tiles, Tile{Suit: SuitHonor, Rank: rank})
		}
	}

	rng.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})

	return &Wall{tiles: tiles}
}

// Draw 从摸牌端取一张牌
// 牌墙摸空返回 false，这是正常的荒牌条件而非错误
func (w *Wall) Draw() (Tile, bool) {
	if len(w.tiles) == 0 {
		return Tile{}, false
	}
	tile := w.tiles[len(w.tiles)-1]
	w.tiles = w.tiles[:len(w.tiles)-1]
	return tile, true
}

// Remaining 剩余牌数
func (w *Wall) Remaining() int {
	return len(w.tiles)
}
