package models

// Stats represents aggregated statistics for a target
type Stats struct {
	Target      string  `json:"target"`
	TotalProbes int     `json:"total_probes"`
	Successful  int     `json:"successful_probes"`
	AvgRTT      float64 `json:"avg_rtt"`
	MaxRTT      float64 `json:"max_rtt"`
	MinRTT      float64 `json:"min_rtt"`
	LossPercent float64 `json:"loss_percent"`
}
