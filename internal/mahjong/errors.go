package mahjong

import "errors"

// 牌桌错误定义
// 时序类错误 (非当前回合出牌、人数不足开局等) 一律以错误值返回，
// 牌桌状态保持不变，由调用方决定是否通知发起者

var (
	ErrNotEnoughSeats        = errors.New("NOT_ENOUGH_SEATS")
	ErrAlreadyStarted        = errors.New("ALREADY_STARTED")
	ErrDealerAlreadySelected = errors.New("DEALER_ALREADY_SELECTED")
	ErrNotStarted            = errors.New("NOT_STARTED")
	ErrSeatNotFound          = errors.New("SEAT_NOT_FOUND")
	ErrNotYourTurn           = errors.New("NOT_YOUR_TURN")
	ErrInvalidTileIndex      = errors.New("INVALID_TILE_INDEX")
)
