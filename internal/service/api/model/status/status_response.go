package status

// RootStatusResponse 루트 상태 응답
type RootStatusResponse struct {
	Project string `json:"project" example:"FastNext Orchestrator"`
	Status  string `json:"status" example:"Online"`
}

// HealthStatusResponse 헬스체크 응답
type HealthStatusResponse struct {
	Status       string `json:"status" example:"Healthy"`
	Version      string `json:"version" example:"1.0.0"`
	Engine       string `json:"engine" example:"Echo"`
	Orchestrator string `json:"orchestrator" example:"Kubernetes"`
}
