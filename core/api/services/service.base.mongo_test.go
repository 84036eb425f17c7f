package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestToUpdateData_PlainMapBecomesSet(t *testing.T) {
	data, err := ToUpdateData(bson.M{"status": "Accepted", "assignedTo": "abc"})
	assert.NoError(t, err)
	assert.Equal(t, "Accepted", data.Set["status"])
	assert.Equal(t, "abc", data.Set["assignedTo"])
	assert.Empty(t, data.Unset)
	assert.Empty(t, data.Push)
}

func TestToUpdateData_OperatorsPreserved(t *testing.T) {
	data, err := ToUpdateData(bson.M{
		"$set":  bson.M{"status": "Accepted"},
		"$inc":  bson.M{"seq": int64(1)},
		"$push": bson.M{"isReadBy": "receipt"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "Accepted", data.Set["status"])
	assert.NotNil(t, data.Inc["seq"])
	assert.NotNil(t, data.Push["isReadBy"])
}

func TestToUpdateData_MixedOperatorAndPlain(t *testing.T) {
	// Field không có toán tử được gom vào $set cùng với $set sẵn có
	data, err := ToUpdateData(bson.M{
		"$set":    bson.M{"status": "Accepted"},
		"archive": false,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Accepted", data.Set["status"])
	assert.Equal(t, false, data.Set["archive"])
}

func TestToUpdateData_PassThrough(t *testing.T) {
	original := &UpdateData{Set: map[string]interface{}{"a": 1}}

	same, err := ToUpdateData(original)
	assert.NoError(t, err)
	assert.Same(t, original, same)

	byValue, err := ToUpdateData(*original)
	assert.NoError(t, err)
	assert.Equal(t, original.Set, byValue.Set)
}

func TestToUpdateData_UnknownOperatorRejected(t *testing.T) {
	_, err := ToUpdateData(bson.M{"$rename": bson.M{"old": "new"}})
	assert.Error(t, err)
}
