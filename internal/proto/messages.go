package proto

import "encoding/json"

// DefaultRoomId 进程内唯一的默认房间
// 当前版本只开一张固定桌，上行事件不带房间ID时落到这里
const DefaultRoomId = "default_room"

// ============== 事件名常量 (与接入层的契约) ==============

const (
	// 上行事件
	EventJoin         = "join"
	EventFillWithBots = "fillWithBots"
	EventStartGame    = "startGame"
	EventDiscard      = "discard"

	// 下行事件
	EventPlayerJoined          = "playerJoined"
	EventDealerSelectionResult = "dealerSelectionResult"
	EventPublicStateUpdate     = "publicStateUpdate"
	EventPrivateHandUpdate     = "privateHandUpdate"
	EventErrorMessage          = "errorMessage"
)

// ============== 上行消息 (Access -> Logic) ==============

// UpstreamEvent 上行事件封装
type UpstreamEvent struct {
	AccessNodeId string          `json:"AccessNodeId"`
	ConnToken    string          `json:"ConnToken"`
	RoomId       string          `json:"RoomId"`
	Payload      UpstreamPayload `json:"Payload"`
}

// UpstreamPayload 上行事件载荷 (恰好其中之一非空)
type UpstreamPayload struct {
	Join         *JoinEvent         `json:"Join,omitempty"`
	FillWithBots *FillWithBotsEvent `json:"FillWithBots,omitempty"`
	StartGame    *StartGameEvent    `json:"StartGame,omitempty"`
	Discard      *DiscardEvent      `json:"Discard,omitempty"`
}

// JoinEvent 入座/重连请求
type JoinEvent struct {
	Username string `json:"username"`
}

// FillWithBotsEvent 机器人补位请求
type FillWithBotsEvent struct{}

// StartGameEvent 开局请求
type StartGameEvent struct{}

// DiscardEvent 出牌请求
type DiscardEvent struct {
	TileIndex int `json:"tileIndex"`
}

// ============== 下行消息 (Logic -> Access) ==============

// DownstreamEvent 下行事件封装
// ConnToken 非空表示定向推送到单个连接，否则由接入层广播给房间
type DownstreamEvent struct {
	RoomId    string          `json:"RoomId"`
	ConnToken string          `json:"ConnToken,omitempty"`
	Event     string          `json:"Event"`
	Data      json.RawMessage `json:"Data"`
}

// TileWire 牌的线上表示
type TileWire struct {
	Suit    string `json:"suit"`
	Rank    int    `json:"rank"`
	IsBonus bool   `json:"isBonus"`
}

// PlayerJoinedData playerJoined 事件载荷
type PlayerJoinedData struct {
	Username           string `json:"username"`
	CurrentPlayerCount int    `json:"currentPlayerCount"`
}

// DiceRollData 单个座位的定庄骰子
type DiceRollData struct {
	D1    int `json:"d1"`
	D2    int `json:"d2"`
	Total int `json:"total"`
}

// DealerSelectionData dealerSelectionResult 事件载荷
type DealerSelectionData struct {
	Rolls       []DiceRollData `json:"rolls"`
	DealerIndex int            `json:"dealerIndex"`
	DealerName  string         `json:"dealerName"`
}

// SeatStateData 公开状态中的单个座位
type SeatStateData struct {
	Name     string     `json:"name"`
	Score    int        `json:"score"`
	Wind     int        `json:"wind"`
	IsBot    bool       `json:"isBot"`
	IsReady  bool       `json:"isReady"`
	Discards []TileWire `json:"discards"`
}

// PublicStateData publicStateUpdate 事件载荷
// 公开投影加上当前行牌座位，绝不含手牌
type PublicStateData struct {
	Started         bool            `json:"started"`
	RoundWind       string          `json:"roundWind"`
	RoundNumber     int             `json:"roundNumber"`
	Honba           int             `json:"honba"`
	PotSticks       int             `json:"potSticks"`
	WallRemaining   int             `json:"wallRemaining"`
	Dora            []TileWire      `json:"dora"`
	ActiveSeatIndex int             `json:"activeSeatIndex"`
	ActiveSeatName  string          `json:"activeSeatName"`
	Players         []SeatStateData `json:"players"`
}

// PrivateHandData privateHandUpdate 事件载荷
// 只允许发给该座位当前的连接
type PrivateHandData struct {
	Hand      []TileWire `json:"hand"`
	DrawnTile *TileWire  `json:"drawnTile,omitempty"`
	IsMyTurn  bool       `json:"isMyTurn"`
}

// ErrorMessageData errorMessage 事件载荷
type ErrorMessageData struct {
	Msg string `json:"msg"`
}
