package models

// Swell holds the wave readings for one session.
type Swell struct {
	SwellID             uint    `json:"swell_id" gorm:"column:SwellID;primaryKey;autoIncrement"`
	MeanWaveDir         int     `json:"mean_wave_dir" gorm:"column:MeanWaveDir;not null"`
	MeanWaveDirCardinal string  `json:"mean_wave_dir_cardinal" gorm:"column:MeanWaveDirCardinal;type:varchar(5);not null"`
	DomPeriod           float64 `json:"dom_period" gorm:"column:DomPeriod;not null"`
	MeanWaveHeight      float64 `json:"mean_wave_height" gorm:"column:MeanWaveHeight;not null"`
}

func (s *Swell) TableName() string {
	return "Swell"
}
