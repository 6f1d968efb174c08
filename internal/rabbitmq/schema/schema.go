package schema

import (
	"encoding/json"
	"time"
)

// DueOccurrence is the wire form of one due reminder occurrence passed from
// the checker to the delivery consumer.
type DueOccurrence struct {
	ID int64
	At time.Time
}

func (o *DueOccurrence) Marshal() ([]byte, error) {
	return json.Marshal(o)
}

func (o *DueOccurrence) Unmarshal(data []byte) error {
	return json.Unmarshal(data, o)
}
