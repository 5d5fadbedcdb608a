package model

// Account columns mirror the original account table; the password is
// stored and returned in plain text, which is part of the wire contract.
type Account struct {
	ID       uint   `gorm:"primaryKey;column:account_id" json:"id"`
	Username string `gorm:"size:255;not null;uniqueIndex;column:username" json:"username"`
	Password string `gorm:"size:255;not null;column:password" json:"password"`
}

// TableName overrides the table name used by GORM.
func (Account) TableName() string {
	return "account"
}
