package dto

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
}

// ServiceInfoResponse is returned by GET /.
type ServiceInfoResponse struct {
	Service   string            `json:"service"`
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	RequestID string            `json:"requestId"`
	Endpoints map[string]string `json:"endpoints"`
	Build     BuildInfo         `json:"build"`
}
