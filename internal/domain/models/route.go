package models

// RouteRecord is one row of the bus dataset. Records are immutable once
// loaded and are replaced wholesale on catalog reload.
type RouteRecord struct {
	RouteNo string  `json:"Route No." csv:"Route No."`
	From    string  `json:"From" csv:"From"`
	To      string  `json:"To" csv:"To"`
	Type    string  `json:"Type" csv:"Type"`
	Fare    float64 `json:"Fare" csv:"Fare"`
}
