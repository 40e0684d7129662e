package responses

type List[T any] struct {
	Items           []T                 `json:"items"`
	Total           int                 `json:"total"`
	BaseTotal       int                 `json:"baseTotal"`
	CategoryOptions map[string][]string `json:"categoryOptions,omitempty"`
	ReadOnly        bool                `json:"readOnly"`
	LoadError       string              `json:"loadError,omitempty"`
}

type Confirmation struct {
	State       string `json:"state"`
	Resource    string `json:"resource,omitempty"`
	TargetID    string `json:"targetId,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Input       string `json:"input"`
	CanConfirm  bool   `json:"canConfirm"`
	LastError   string `json:"lastError,omitempty"`
}
