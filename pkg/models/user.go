package models

// LogUser is a registered session logger. Rows come from the registration
// flow, never from session ingestion.
type LogUser struct {
	UserID   uint    `json:"user_id" gorm:"column:UserID;primaryKey;autoIncrement"`
	Username string  `json:"username" gorm:"column:Username;type:varchar(255);uniqueIndex;not null"`
	Passkey  string  `json:"-" gorm:"column:Passkey;type:varchar(255);not null"`
	Email    *string `json:"email,omitempty" gorm:"column:Email;type:varchar(255)"`
}

func (u *LogUser) TableName() string {
	return "LogUser"
}
