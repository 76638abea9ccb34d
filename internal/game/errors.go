package game

import "errors"

// Rejection reasons returned by Store mutations. A rejected mutation leaves the
// store unchanged.
var (
	ErrInvalidPhase       = errors.New("invalid game phase")
	ErrInvalidMap         = errors.New("invalid map")
	ErrInvalidMode        = errors.New("invalid game mode")
	ErrInvalidSlot        = errors.New("invalid weapon slot")
	ErrInvalidMount       = errors.New("invalid attachment mount")
	ErrInvalidSettings    = errors.New("invalid settings")
	ErrNegativeXP         = errors.New("xp amount must not be negative")
	ErrBotNotFound        = errors.New("bot not found")
	ErrBotExists          = errors.New("bot already exists")
	ErrWeaponNotFound     = errors.New("weapon not found")
	ErrSlotEmpty          = errors.New("weapon slot is empty")
	ErrPrimaryOccupied    = errors.New("primary slot occupied without dual primary powerup")
	ErrNoAmmo             = errors.New("magazine is empty")
	ErrMagazineFull       = errors.New("magazine is full")
	ErrNoReserve          = errors.New("reserve ammo is empty")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrAttachmentLocked   = errors.New("attachment is locked")
	ErrKillStreakNotFound = errors.New("kill streak not found")
	ErrKillStreakActive   = errors.New("kill streak already active")
	ErrKillStreakInactive = errors.New("kill streak not active")
	ErrInsufficientStreak = errors.New("kill streak counter below cost")
)
