// HistoryData is a paginated response payload for the detection history.
package dto

import "cancerdetect/internal/model"

type HistoryData struct {
	Detections []model.Detection `json:"detections"`
	Length     int               `json:"length"`
	Limit      int               `json:"pageSize"`
}
