package catheter

// Reading is one persisted sensor/prediction record in intellicath_data.
type Reading struct {
	ID                int64   `json:"id"`
	UrineOutput       float64 `json:"urine_output"`
	UrineFlowRate     float64 `json:"urine_flow_rate"`
	CatheterBagVolume float64 `json:"catheter_bag_volume"`
	RemainingVolume   float64 `json:"remaining_volume"`
	PredictedTime     string  `json:"predicted_time"`
	ActualTime        *string `json:"actual_time"`
}
