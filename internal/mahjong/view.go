package mahjong

// SeatView 单个座位的公开投影
type SeatView struct {
	Name     string
	Score    int
	Wind     int8
	IsBot    bool
	IsReady  bool
	Discards []Tile
}

// PublicState 牌桌公开投影
// 可以安全广播给房间内所有参与者，绝不包含任何手牌
type PublicState struct {
	Started         bool
	RoundWind       string
	RoundNumber     int
	Honba           int
	PotSticks       int
	WallRemaining   int
	DoraIndicators  []Tile
	ActiveSeatIndex int
	ActiveSeatName  string
	Seats           []SeatView
}

// PrivateState 座位私有投影
// 只允许发送到该座位当前的连接令牌
type PrivateState struct {
	Hand     []Tile
	IsMyTurn bool
}

// PublicView 生成公开投影 (读锁下快照)
func (t *Table) PublicView() *PublicState {
	t.mu.RLock()
	defer t.mu.RUnlock()

	state := &PublicState{
		Started:        t.started,
		RoundWind:      t.roundWind,
		RoundNumber:    t.roundNumber,
		Honba:          t.honba,
		PotSticks:      t.potSticks,
		DoraIndicators: CloneTiles(t.doraTiles),
		Seats:          make([]SeatView, 0, len(t.seats)),
	}

	if t.wall != nil {
		state.WallRemaining = t.wall.Remaining()
	}
	if t.activeIndex >= 0 && t.activeIndex < len(t.seats) {
		state.ActiveSeatIndex = t.activeIndex
		state.ActiveSeatName = t.seats[t.activeIndex].Name()
	}

	for _, seat := range t.seats {
		state.Seats = append(state.Seats, SeatView{
			Name:     seat.Name(),
			Score:    seat.Score(),
			Wind:     seat.Wind(),
			IsBot:    seat.IsBot(),
			IsReady:  seat.IsReady(),
			Discards: seat.DiscardedTiles(),
		})
	}

	return state
}

// PrivateView 生成指定座位的私有投影
func (t *Table) PrivateView(name string) (*PrivateState, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i, seat := range t.seats {
		if seat.Name() == name {
			return &PrivateState{
				Hand:     seat.HandTiles(),
				IsMyTurn: t.started && i == t.activeIndex,
			}, nil
		}
	}
	return nil, ErrSeatNotFound
}
