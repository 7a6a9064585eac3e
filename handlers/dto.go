package handlers

type JoinPayload struct {
	Name string `json:"name"`
}

type MessagePayload struct {
	To   string `json:"to"`
	Text string `json:"text"`
	Type string `json:"type"`
}
