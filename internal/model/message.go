package model

type Message struct {
	ID              uint   `gorm:"primaryKey;column:message_id" json:"id"`
	PostedBy        uint   `gorm:"not null;index;column:posted_by" json:"author_id"`
	MessageText     string `gorm:"size:255;not null;column:message_text" json:"text"`
	TimePostedEpoch int64  `gorm:"column:time_posted_epoch" json:"posted_at"`
}

// TableName overrides the table name used by GORM.
func (Message) TableName() string {
	return "message"
}
