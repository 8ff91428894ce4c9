package worker

import (
	"github.com/corebase/go-futures/converter"
	"github.com/corebase/go-futures/futureerrors"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// taskMessage is the dispatch message: the correlation identifier, the
// callable reference, and the serialized arguments. Nothing else crosses the
// boundary into the worker.
type taskMessage struct {
	TaskID string              `json:"task_id"`
	Name   string              `json:"name"`
	Inputs []converter.Payload `json:"inputs"`
}

// resultMessage is the completion message. The failure payload is a
// serializable error representation, never a live value, since the original
// failure may not survive the boundary.
type resultMessage struct {
	TaskID string             `json:"task_id"`
	Status Status             `json:"status"`
	Result converter.Payload  `json:"result,omitempty"`
	Error  *futureerrors.Error `json:"error,omitempty"`

	// reason classifies failures synthesized by the bridge itself; empty for
	// failures reported by the task.
	reason Reason
}
