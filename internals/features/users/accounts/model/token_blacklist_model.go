package model

import "time"

// TokenBlacklistModel holds access tokens revoked by logout until they expire.
// Only the sha256 of the token is stored.
type TokenBlacklistModel struct {
	TokenHash string    `gorm:"type:char(64);primaryKey;column:token_hash" json:"-"`
	ExpiredAt time.Time `gorm:"not null;index:idx_token_blacklist_expired_at;column:expired_at" json:"expired_at"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime;column:created_at" json:"created_at"`
}

func (TokenBlacklistModel) TableName() string { return "token_blacklist" }
