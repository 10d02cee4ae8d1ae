package models

// Wind holds the wind readings for one session.
type Wind struct {
	WindID              uint    `json:"wind_id" gorm:"column:WindID;primaryKey;autoIncrement"`
	MeanWindDir         int     `json:"mean_wind_dir" gorm:"column:MeanWindDir;not null"`
	MeanWindDirCardinal string  `json:"mean_wind_dir_cardinal" gorm:"column:MeanWindDirCardinal;type:varchar(5);not null"`
	MeanWindSpeed       float64 `json:"mean_wind_speed" gorm:"column:MeanWindSpeed;not null"`
	GustSpeed           float64 `json:"gust_speed" gorm:"column:GustSpeed;not null"`
}

func (w *Wind) TableName() string {
	return "Wind"
}
