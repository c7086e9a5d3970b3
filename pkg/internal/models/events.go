package models

import jsoniter "github.com/json-iterator/go"

const (
	CommandMessageNew = "messages.new"
	CommandError      = "error"
)

// Command is the push envelope delivered over the realtime bridge.
type Command struct {
	Action  string `json:"action"`
	Payload any    `json:"payload,omitempty"`
	Message string `json:"message,omitempty"`
}

func (v Command) Marshal() []byte {
	data, _ := jsoniter.Marshal(v)
	return data
}

func CommandFromError(err error) Command {
	return Command{
		Action:  CommandError,
		Message: err.Error(),
	}
}
