package mahjong

const (
	// InitialScore 初始分数
	InitialScore = 25000

	// StandardHandSize 标准手牌数 (打出后等待下家摸牌的状态)
	StandardHandSize = 13
)

// Seat 座位对象
// 玩家在牌桌上的全部可变状态。座位身份以显示名为准，连接令牌
// 在断线重连时会被多次覆盖，不能作为稳定标识。
// 并发控制由所属 Table 的锁统一保证，Seat 本身不加锁。
type Seat struct {
	name      string
	connToken string
	isBot     bool

	hand     []Tile // 手牌，每次变更后保持标准排序 (摸到的牌暂留末位)
	discards []Tile // 出牌堆，严格按打出顺序追加
	score    int
	wind     int8 // 门风 0-3，相对庄家
	ready    bool // 报听标记，当前流程内不生效
}

// NewSeat 创建新座位
func NewSeat(name, connToken string, isBot bool) *Seat {
	return &Seat{
		name:      name,
		connToken: connToken,
		isBot:     isBot,
		hand:      []Tile{},
		discards:  []Tile{},
		score:     InitialScore,
	}
}

// Name 获取显示名
func (s *Seat) Name() string {
	return s.name
}

// ConnToken 获取当前连接令牌
func (s *Seat) ConnToken() string {
	return s.connToken
}

// SetConnToken 重连时覆盖连接令牌
func (s *Seat) SetConnToken(token string) {
	s.connToken = token
}

// IsBot 是否机器人座位
func (s *Seat) IsBot() bool {
	return s.isBot
}

// Score 获取分数
func (s *Seat) Score() int {
	return s.score
}

// Wind 获取门风
func (s *Seat) Wind() int8 {
	return s.wind
}

// IsReady 是否已报听
func (s *Seat) IsReady() bool {
	return s.ready
}

// DrawTile 摸牌
// 摸到的牌追加在手牌末位，不立即排序，出牌后再整理
func (s *Seat) DrawTile(tile Tile) {
	s.hand = append(s.hand, tile)
}

// DiscardAt 按手牌下标出牌
// 下标越界返回 ErrInvalidTileIndex，不改变任何状态
func (s *Seat) DiscardAt(index int) (Tile, error) {
	if index < 0 || index >= len(s.hand) {
		return Tile{}, ErrInvalidTileIndex
	}

	tile := s.hand[index]
	s.hand = append(s.hand[:index], s.hand[index+1:]...)
	s.discards = append(s.discards, tile)
	SortTiles(s.hand)

	return tile, nil
}

// SortHand 整理手牌
func (s *Seat) SortHand() {
	SortTiles(s.hand)
}

// HandSize 手牌数量
func (s *Seat) HandSize() int {
	return len(s.hand)
}

// HandTiles 获取手牌 (返回副本)
func (s *Seat) HandTiles() []Tile {
	return CloneTiles(s.hand)
}

// DiscardedTiles 获取出牌堆 (返回副本)
func (s *Seat) DiscardedTiles() []Tile {
	return CloneTiles(s.discards)
}
