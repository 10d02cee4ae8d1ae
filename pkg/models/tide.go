package models

// Tide holds the tide readings for one session. Everything is nullable:
// spots without a nearby tide station log sessions with no tide data at all.
type Tide struct {
	TideID        uint     `json:"tide_id" gorm:"column:TideID;primaryKey;autoIncrement"`
	Incoming      *bool    `json:"incoming" gorm:"column:Incoming"`
	MaximumHeight *float64 `json:"maximum_height" gorm:"column:MaximumHeight"`
	MinimumHeight *float64 `json:"minimum_height" gorm:"column:MinimumHeight"`
	MedianHeight  *float64 `json:"median_height" gorm:"column:MedianHeight"`
}

func (t *Tide) TableName() string {
	return "Tide"
}
