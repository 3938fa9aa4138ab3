package value_object

import (
	"errors"
)

// Fingerprint は relay の識別子。レスポンス内で一意
type Fingerprint struct {
	val string
}

func NewFingerprint(s string) (Fingerprint, error) {
	if s == "" {
		return Fingerprint{}, errors.New("fingerprint must not be empty")
	}
	return Fingerprint{val: s}, nil
}

func (f Fingerprint) String() string           { return f.val }
func (f Fingerprint) Equal(o Fingerprint) bool { return f.val == o.val }
func (f Fingerprint) IsZero() bool             { return f.val == "" }
