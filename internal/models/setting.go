package models

// Setting is a singleton key/value pair, last write wins.
type Setting struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value string `json:"value"`
}
