package models

// Location is a surf spot and its data sources. Rows are loaded by the seed
// tool, never by session ingestion.
type Location struct {
	LocationID  uint    `json:"location_id" gorm:"column:LocationID;primaryKey;autoIncrement"`
	SpotName    string  `json:"spot_name" gorm:"column:SpotName;type:varchar(255);uniqueIndex;not null"`
	BuoyNum     string  `json:"buoy_num" gorm:"column:BuoyNum;type:varchar(16)"`
	Lat         float64 `json:"lat" gorm:"column:Lat"`
	Long        float64 `json:"long" gorm:"column:Long"`
	TideStation string  `json:"tide_station" gorm:"column:TideStation;type:varchar(16)"`
}

func (l *Location) TableName() string {
	return "Location"
}
