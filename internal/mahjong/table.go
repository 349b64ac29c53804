package mahjong

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

const (
	// TableSeats 固定四人桌
	TableSeats = 4

	// DefaultRoundWind 默认场风
	DefaultRoundWind = "東"
)

// JoinOutcome 入座结果类型
type JoinOutcome int8

const (
	JoinSeated      JoinOutcome = iota // 新入座
	JoinReconnected                    // 同名座位重连，令牌被覆盖
	JoinRejected                       // 满桌且无同名座位，拒绝
)

// JoinResult 入座结果
// PreviousToken 在重连时携带被覆盖的旧令牌，供调用方失效其路由记录
type JoinResult struct {
	Outcome       JoinOutcome
	Seat          *Seat
	SeatCount     int
	PreviousToken string
}

// DiceRoll 单个座位的定庄骰子
type DiceRoll struct {
	D1    int `json:"d1"`
	D2    int `json:"d2"`
	Total int `json:"total"`
}

// DealerSelection 定庄结果
type DealerSelection struct {
	Rolls       []DiceRoll
	DealerIndex int
	DealerName  string
}

// TurnResult 一次出牌转移的结果
type TurnResult struct {
	Discarded     Tile
	SeatIndex     int    // 出牌座位
	SeatName      string // 出牌座位显示名
	SeatIsBot     bool
	NextSeatIndex int
	NextSeatName  string
	NextConnToken string
	NextIsBot     bool
	DrawnTile     *Tile // nil 表示牌墙已摸空 (荒牌条件，非错误)
	WallRemaining int
}

// SeatSnapshot 座位快照，供延迟任务按名字重新解析座位
type SeatSnapshot struct {
	Name      string
	ConnToken string
	IsBot     bool
	HandSize  int
	IsActive  bool
}

// Table 牌桌 (一局游戏会话的聚合根)
// 所有状态变更通过写锁串行化: 人类出牌事件与定时触发的机器人回合
// 进入同一把锁，不会在变更中途交错。视图投影在读锁下做快照。
type Table struct {
	mu  sync.RWMutex
	rng *rand.Rand

	seats        []*Seat
	wall         *Wall
	deadWall     []Tile
	doraTiles    []Tile // 已翻开的宝牌指示牌，本流程内只有王牌首张
	dealerChosen bool
	dealerIndex  int
	activeIndex  int
	roundWind   string
	roundNumber int
	honba       int
	potSticks   int
	started     bool
	lastActive  time.Time
}

// NewTable 创建空牌桌
func NewTable() *Table {
	return newTable(rand.New(rand.NewSource(time.Now().UnixNano())))
}

func newTable(rng *rand.Rand) *Table {
	return &Table{
		rng:         rng,
		seats:       []*Seat{},
		roundWind:   DefaultRoundWind,
		roundNumber: 1,
		lastActive:  time.Now(),
	}
}

// JoinOrReconnect 入座或重连
// 座位身份只按显示名匹配，连接令牌是临时值。同名座位存在则覆盖
// 其令牌 (手牌/分数不变)；有空位则新建座位；满桌且无同名则拒绝。
func (t *Table) JoinOrReconnect(name, connToken string) JoinResult {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, seat := range t.seats {
		if seat.Name() == name {
			previous := seat.ConnToken()
			seat.SetConnToken(connToken)
			t.lastActive = time.Now()
			return JoinResult{
				Outcome:       JoinReconnected,
				Seat:          seat,
				SeatCount:     len(t.seats),
				PreviousToken: previous,
			}
		}
	}

	if len(t.seats) >= TableSeats {
		return JoinResult{Outcome: JoinRejected, SeatCount: len(t.seats)}
	}

	seat := NewSeat(name, connToken, false)
	t.seats = append(t.seats, seat)
	t.lastActive = time.Now()

	return JoinResult{Outcome: JoinSeated, Seat: seat, SeatCount: len(t.seats)}
}

// FillWithBots 用机器人补满剩余座位
// 按座位顺序逐个补入，返回新增的座位列表
func (t *Table) FillWithBots() []*Seat {
	t.mu.Lock()
	defer t.mu.Unlock()

	added := []*Seat{}
	for len(t.seats) < TableSeats {
		n := len(t.seats) + 1
		seat := NewSeat(fmt.Sprintf("CPU-%d", n), fmt.Sprintf("bot-conn-%d", n), true)
		t.seats = append(t.seats, seat)
		added = append(added, seat)
	}

	if len(added) > 0 {
		t.lastActive = time.Now()
	}
	return added
}

// SeatCount 当前座位数
func (t *Table) SeatCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.seats)
}

// HasStarted 是否已开局
func (t *Table) HasStarted() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.started
}

// Start 定庄并开局 (单次锁内的复合变更)
// 掷骰和发牌在同一次持锁中完成: 并发的开局请求不可能在两步之间
// 插入第二次定庄，广播出去的庄家必然就是实际拿 14 张先行牌的座位
func (t *Table) Start() (*DealerSelection, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	selection, err := t.selectDealerLocked()
	if err != nil {
		return nil, err
	}
	if err := t.startRoundLocked(); err != nil {
		return nil, err
	}
	return selection, nil
}

// SelectDealer 掷骰定庄
// 每个座位掷两颗骰子取和，严格最大者为庄家并成为首个行牌座位；
// 平点不重掷，取最先出现的最大值 (简化规则，见对外说明)。
// 定庄只允许一次，重复调用返回 ErrDealerAlreadySelected
func (t *Table) SelectDealer() (*DealerSelection, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selectDealerLocked()
}

func (t *Table) selectDealerLocked() (*DealerSelection, error) {
	if len(t.seats) != TableSeats {
		return nil, ErrNotEnoughSeats
	}
	if t.started {
		return nil, ErrAlreadyStarted
	}
	if t.dealerChosen {
		return nil, ErrDealerAlreadySelected
	}

	rolls := make([]DiceRoll, len(t.seats))
	maxTotal := -1
	dealerIndex := 0
	for i := range t.seats {
		d1 := t.rng.Intn(6) + 1
		d2 := t.rng.Intn(6) + 1
		rolls[i] = DiceRoll{D1: d1, D2: d2, Total: d1 + d2}
		if rolls[i].Total > maxTotal {
			maxTotal = rolls[i].Total
			dealerIndex = i
		}
	}

	t.dealerChosen = true
	t.dealerIndex = dealerIndex
	t.activeIndex = dealerIndex
	t.lastActive = time.Now()

	return &DealerSelection{
		Rolls:       rolls,
		DealerIndex: dealerIndex,
		DealerName:  t.seats[dealerIndex].Name(),
	}, nil
}

// StartRound 开局
// 生成并洗好牌墙，划出 14 张王牌并翻开首张作为宝牌指示牌，
// 按座位顺序轮转发 13 张，庄家额外摸一张后从庄家开始行牌。
// started 只允许 false->true 一次
func (t *Table) StartRound() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.startRoundLocked()
}

func (t *Table) startRoundLocked() error {
	if len(t.seats) != TableSeats {
		return ErrNotEnoughSeats
	}
	if t.started {
		return ErrAlreadyStarted
	}

	t.wall = NewWall(t.rng)

	t.deadWall = make([]Tile, 0, DeadWallSize)
	for i := 0; i < DeadWallSize; i++ {
		tile, _ := t.wall.Draw()
		t.deadWall = append(t.deadWall, tile)
	}
	t.doraTiles = []Tile{t.deadWall[0]}

	// 轮转发牌: 13 圈，每圈每个座位一张
	for round := 0; round < StandardHandSize; round++ {
		for _, seat := range t.seats {
			tile, _ := t.wall.Draw()
			seat.DrawTile(tile)
		}
	}

	for i, seat := range t.seats {
		seat.SortHand()
		seat.wind = int8((i - t.dealerIndex + TableSeats) % TableSeats)
	}

	// 庄家的第一张自摸牌，留在手牌末位
	if tile, ok := t.wall.Draw(); ok {
		t.seats[t.dealerIndex].DrawTile(tile)
	}

	t.activeIndex = t.dealerIndex
	t.started = true
	t.lastActive = time.Now()

	return nil
}

// Discard 出牌 (唯一的回合推进入口)
// 按连接令牌解析座位；非当前行牌座位或下标越界一律拒绝且不改变
// 任何状态。成功后行牌权移交下一座位并为其摸牌，牌墙摸空时下一
// 座位拿不到牌，由返回值报告而非报错。
func (t *Table) Discard(connToken string, index int) (*TurnResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started {
		return nil, ErrNotStarted
	}

	seatIndex := -1
	for i, seat := range t.seats {
		if seat.ConnToken() == connToken {
			seatIndex = i
			break
		}
	}
	if seatIndex == -1 {
		return nil, ErrSeatNotFound
	}
	if seatIndex != t.activeIndex {
		return nil, ErrNotYourTurn
	}

	discarder := t.seats[seatIndex]
	discarded, err := discarder.DiscardAt(index)
	if err != nil {
		return nil, err
	}

	t.activeIndex = (t.activeIndex + 1) % TableSeats
	next := t.seats[t.activeIndex]

	var drawn *Tile
	if tile, ok := t.wall.Draw(); ok {
		next.DrawTile(tile)
		drawn = &tile
	}

	t.lastActive = time.Now()

	return &TurnResult{
		Discarded:     discarded,
		SeatIndex:     seatIndex,
		SeatName:      discarder.Name(),
		SeatIsBot:     discarder.IsBot(),
		NextSeatIndex: t.activeIndex,
		NextSeatName:  next.Name(),
		NextConnToken: next.ConnToken(),
		NextIsBot:     next.IsBot(),
		DrawnTile:     drawn,
		WallRemaining: t.wall.Remaining(),
	}, nil
}

// SeatByName 按显示名获取座位快照
// 延迟触发的机器人回合用它重新解析座位，不持有跨延迟的引用
func (t *Table) SeatByName(name string) (SeatSnapshot, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i, seat := range t.seats {
		if seat.Name() == name {
			return SeatSnapshot{
				Name:      seat.Name(),
				ConnToken: seat.ConnToken(),
				IsBot:     seat.IsBot(),
				HandSize:  seat.HandSize(),
				IsActive:  t.started && i == t.activeIndex,
			}, true
		}
	}
	return SeatSnapshot{}, false
}

// LastActiveTime 获取最后活跃时间 (用于淘汰策略)
func (t *Table) LastActiveTime() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastActive
}
