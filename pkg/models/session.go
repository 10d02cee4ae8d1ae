package models

import "time"

// SessionInfo links one surf session to its location, logger, and the four
// reading rows captured for it. All six references cascade on update and
// delete so removing a Location or LogUser removes its sessions.
type SessionInfo struct {
	SessionID      uint      `json:"session_id" gorm:"column:SessionID;primaryKey;autoIncrement"`
	LocID          uint      `json:"loc_id" gorm:"column:LocID;not null"`
	TempID         uint      `json:"temp_id" gorm:"column:TempID;not null"`
	SwellID        uint      `json:"swell_id" gorm:"column:SwellID;not null"`
	TideID         uint      `json:"tide_id" gorm:"column:TideID;not null"`
	WindID         uint      `json:"wind_id" gorm:"column:WindID;not null"`
	UserID         uint      `json:"user_id" gorm:"column:UserID;not null"`
	SessionDate    time.Time `json:"session_date" gorm:"column:SessionDate;type:date;not null"`
	SessionTimeIn  string    `json:"session_time_in" gorm:"column:SessionTimeIn;type:varchar(5);not null"`
	SessionTimeOut string    `json:"session_time_out" gorm:"column:SessionTimeOut;type:varchar(5);not null"`
	SessionNotes   *string   `json:"session_notes" gorm:"column:SessionNotes;type:text"`
	Rating         int       `json:"rating" gorm:"column:Rating;not null"`

	Location Location `json:"-" gorm:"foreignKey:LocID;references:LocationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Temps    Temps    `json:"-" gorm:"foreignKey:TempID;references:TempID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Swell    Swell    `json:"-" gorm:"foreignKey:SwellID;references:SwellID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Tide     Tide     `json:"-" gorm:"foreignKey:TideID;references:TideID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Wind     Wind     `json:"-" gorm:"foreignKey:WindID;references:WindID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	LogUser  LogUser  `json:"-" gorm:"foreignKey:UserID;references:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (s *SessionInfo) TableName() string {
	return "SessionInfo"
}
