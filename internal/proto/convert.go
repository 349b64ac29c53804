package proto

import "sudooom.game.mahjong/internal/mahjong"

// TileToWire 转换牌到线上表示
func TileToWire(t mahjong.Tile) TileWire {
	return TileWire{
		Suit:    t.Suit.String(),
		Rank:    int(t.Rank),
		IsBonus: t.IsBonus,
	}
}

// TilesToWire 批量转换牌
func TilesToWire(tiles []mahjong.Tile) []TileWire {
	result := make([]TileWire, 0, len(tiles))
	for _, t := range tiles {
		result = append(result, TileToWire(t))
	}
	return result
}

// PublicStateFromView 从公开投影构建广播载荷
func PublicStateFromView(view *mahjong.PublicState) *PublicStateData {
	data := &PublicStateData{
		Started:         view.Started,
		RoundWind:       view.RoundWind,
		RoundNumber:     view.RoundNumber,
		Honba:           view.Honba,
		PotSticks:       view.PotSticks,
		WallRemaining:   view.WallRemaining,
		Dora:            TilesToWire(view.DoraIndicators),
		ActiveSeatIndex: view.ActiveSeatIndex,
		ActiveSeatName:  view.ActiveSeatName,
		Players:         make([]SeatStateData, 0, len(view.Seats)),
	}

	for _, seat := range view.Seats {
		data.Players = append(data.Players, SeatStateData{
			Name:     seat.Name,
			Score:    seat.Score,
			Wind:     int(seat.Wind),
			IsBot:    seat.IsBot,
			IsReady:  seat.IsReady,
			Discards: TilesToWire(seat.Discards),
		})
	}

	return data
}

// PrivateHandFromView 从私有投影构建定向载荷
func PrivateHandFromView(view *mahjong.PrivateState, drawn *mahjong.Tile) *PrivateHandData {
	data := &PrivateHandData{
		Hand:     TilesToWire(view.Hand),
		IsMyTurn: view.IsMyTurn,
	}
	if drawn != nil {
		wire := TileToWire(*drawn)
		data.DrawnTile = &wire
	}
	return data
}

// DealerSelectionFromResult 从定庄结果构建广播载荷
func DealerSelectionFromResult(sel *mahjong.DealerSelection) *DealerSelectionData {
	data := &DealerSelectionData{
		Rolls:       make([]DiceRollData, 0, len(sel.Rolls)),
		DealerIndex: sel.DealerIndex,
		DealerName:  sel.DealerName,
	}
	for _, roll := range sel.Rolls {
		data.Rolls = append(data.Rolls, DiceRollData{D1: roll.D1, D2: roll.D2, Total: roll.Total})
	}
	return data
}
