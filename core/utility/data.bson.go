package utility

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// ToMap chuyển đổi struct thành map thông qua bson marshal/unmarshal.
// Dùng khi cần bổ sung field động (timestamps) trước khi ghi vào MongoDB.
func ToMap(s interface{}) (map[string]interface{}, error) {
	raw, err := bson.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("bson marshal failed: %w", err)
	}

	var m map[string]interface{}
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("bson unmarshal failed: %w", err)
	}
	return m, nil
}
