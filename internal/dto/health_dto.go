package dto

type HealthResponse struct {
	Status              string `json:"status"`
	Timestamp           string `json:"timestamp"`
	Service             string `json:"service"`
	GoogleKeepConnected bool   `json:"google_keep_connected"`
	Version             string `json:"version"`
}

type RootResponse struct {
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}
