package value_object

import "github.com/google/uuid"

// RequestID は 1 回の fetch を識別する UUIDv4
type RequestID struct{ val uuid.UUID }

func NewRequestID() RequestID { return RequestID{uuid.New()} }
func RequestIDFrom(s string) (RequestID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return RequestID{}, err
	}
	return RequestID{val: id}, nil
}
func (r RequestID) String() string         { return r.val.String() }
func (r RequestID) Equal(o RequestID) bool { return r.val == o.val }
