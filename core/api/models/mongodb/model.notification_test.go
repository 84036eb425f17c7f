package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestIsReadByUser(t *testing.T) {
	reader := primitive.NewObjectID()
	other := primitive.NewObjectID()

	n := Notification{
		IsReadBy: []ReadReceipt{{UserID: reader, ReadAt: 1000}},
	}

	if !n.IsReadByUser(reader) {
		t.Error("user có receipt phải được tính là đã đọc")
	}
	if n.IsReadByUser(other) {
		t.Error("user không có receipt phải được tính là chưa đọc")
	}

	empty := Notification{}
	if empty.IsReadByUser(reader) {
		t.Error("thông báo chưa có receipt nào phải là chưa đọc")
	}
}

func TestCountUnread(t *testing.T) {
	user := primitive.NewObjectID()
	other := primitive.NewObjectID()

	notifications := []Notification{
		{IsReadBy: []ReadReceipt{{UserID: user, ReadAt: 1}}},            // đã đọc
		{IsReadBy: []ReadReceipt{{UserID: other, ReadAt: 2}}},           // người khác đọc, user chưa
		{IsReadBy: []ReadReceipt{}},                                     // chưa ai đọc
		{IsReadBy: []ReadReceipt{{UserID: user, ReadAt: 3}, {UserID: other, ReadAt: 4}}}, // cả hai đã đọc
	}

	if got := CountUnread(notifications, user); got != 2 {
		t.Errorf("CountUnread = %d, muốn 2", got)
	}
	if got := CountUnread(nil, user); got != 0 {
		t.Errorf("CountUnread(nil) = %d, muốn 0", got)
	}
}
