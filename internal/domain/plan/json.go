package plan

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON renders the unlimited sentinel as the string "unlimited" so API
// consumers never see the raw sentinel value.
func (l Limit) MarshalJSON() ([]byte, error) {
	if l.IsUnlimited() {
		return json.Marshal("unlimited")
	}
	return json.Marshal(int64(l))
}

// UnmarshalJSON accepts either a number or the string "unlimited".
func (l *Limit) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte(`"`)) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s != "unlimited" {
			return fmt.Errorf("unknown limit value %q", s)
		}
		*l = Unlimited
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*l = Limit(n)
	return nil
}
