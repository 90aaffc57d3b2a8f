package responses

type ResponseDTO struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type TransportStatus struct {
	Connected  bool   `json:"connected"`
	HostNumber string `json:"host_number,omitempty"`
}
