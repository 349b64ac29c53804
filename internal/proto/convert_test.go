package proto

import (
	"encoding/json"
	"strings"
	"testing"

	"sudooom.game.mahjong/internal/mahjong"
)

// TestTileToWire 测试牌的线上表示: 花色用名字而非数字
func TestTileToWire(t *testing.T) {
	cases := []struct {
		tile mahjong.Tile
		want TileWire
	}{
		{mahjong.Tile{Suit: mahjong.SuitCharacter, Rank: 1}, TileWire{Suit: "character", Rank: 1}},
		{mahjong.Tile{Suit: mahjong.SuitCircle, Rank: 9}, TileWire{Suit: "circle", Rank: 9}},
		{mahjong.Tile{Suit: mahjong.SuitBamboo, Rank: 5, IsBonus: true}, TileWire{Suit: "bamboo", Rank: 5, IsBonus: true}},
		{mahjong.Tile{Suit: mahjong.SuitHonor, Rank: 7}, TileWire{Suit: "honor", Rank: 7}},
	}

	for _, c := range cases {
		if got := TileToWire(c.tile); got != c.want {
			t.Errorf("期望 %+v, 实际 = %+v", c.want, got)
		}
	}
}

// TestPrivateHandFromView 测试私有载荷: 摸到的牌单独标出
func TestPrivateHandFromView(t *testing.T) {
	view := &mahjong.PrivateState{
		Hand: []mahjong.Tile{
			{Suit: mahjong.SuitCharacter, Rank: 1},
			{Suit: mahjong.SuitHonor, Rank: 2},
		},
		IsMyTurn: true,
	}
	drawn := &mahjong.Tile{Suit: mahjong.SuitHonor, Rank: 2}

	data := PrivateHandFromView(view, drawn)

	if len(data.Hand) != 2 {
		t.Fatalf("期望手牌 = 2 张, 实际 = %d", len(data.Hand))
	}
	if !data.IsMyTurn {
		t.Error("期望 IsMyTurn = true")
	}
	if data.DrawnTile == nil || data.DrawnTile.Suit != "honor" || data.DrawnTile.Rank != 2 {
		t.Errorf("期望摸牌 = honor-2, 实际 = %+v", data.DrawnTile)
	}

	// 荒牌时不摸牌,载荷省略 drawnTile 字段
	data = PrivateHandFromView(view, nil)
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}
	if strings.Contains(string(raw), "drawnTile") {
		t.Errorf("期望省略 drawnTile, 实际 = %s", raw)
	}
}

// TestUpstreamPayloadOneof 测试上行载荷恰好其中之一非空
func TestUpstreamPayloadOneof(t *testing.T) {
	raw := `{"AccessNodeId":"access-1","ConnToken":"conn-1","RoomId":"default_room","Payload":{"Discard":{"tileIndex":13}}}`

	var event UpstreamEvent
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		t.Fatalf("反序列化失败: %v", err)
	}

	if event.Payload.Discard == nil {
		t.Fatal("期望 Discard 载荷非空")
	}
	if event.Payload.Discard.TileIndex != 13 {
		t.Errorf("期望 tileIndex = 13, 实际 = %d", event.Payload.Discard.TileIndex)
	}
	if event.Payload.Join != nil || event.Payload.StartGame != nil || event.Payload.FillWithBots != nil {
		t.Error("期望其余载荷为空")
	}
}

// TestDownstreamEventDirected 测试定向事件带连接令牌
func TestDownstreamEventDirected(t *testing.T) {
	payload, _ := json.Marshal(&ErrorMessageData{Msg: "Table is full."})
	event := &DownstreamEvent{
		RoomId:    DefaultRoomId,
		ConnToken: "conn-1",
		Event:     EventErrorMessage,
		Data:      payload,
	}

	raw, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}

	var decoded DownstreamEvent
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("反序列化失败: %v", err)
	}
	if decoded.ConnToken != "conn-1" || decoded.Event != EventErrorMessage {
		t.Errorf("期望定向 errorMessage, 实际 = %+v", decoded)
	}

	// 广播事件不带令牌,序列化时省略
	broadcast := &DownstreamEvent{RoomId: DefaultRoomId, Event: EventPublicStateUpdate, Data: payload}
	raw, _ = json.Marshal(broadcast)
	if strings.Contains(string(raw), "ConnToken") {
		t.Errorf("期望广播事件省略 ConnToken, 实际 = %s", raw)
	}
}
