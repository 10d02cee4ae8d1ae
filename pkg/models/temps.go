package models

// Temps holds the air and water temperature readings for one session.
// Both values are nullable since buoys regularly drop either sensor.
type Temps struct {
	TempID    uint     `json:"temp_id" gorm:"column:TempID;primaryKey;autoIncrement"`
	AirTemp   *float64 `json:"air_temp" gorm:"column:AirTemp"`
	WaterTemp *float64 `json:"water_temp" gorm:"column:WaterTemp"`
}

func (t *Temps) TableName() string {
	return "Temps"
}
