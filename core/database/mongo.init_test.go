package database

import (
	"reflect"
	"testing"
)

func TestParseIndexTag(t *testing.T) {
	entries := parseIndexTag("single:1,order:-1")
	if len(entries) != 1 {
		t.Fatalf("muốn 1 entry, nhận %d", len(entries))
	}
	if entries[0]["single"] != "1" {
		t.Errorf("thiếu thuộc tính single, nhận %v", entries[0])
	}
	if entries[0]["order"] != "-1" {
		t.Errorf("thiếu thuộc tính order, nhận %v", entries[0])
	}

	// unique với sparse không có giá trị
	entries = parseIndexTag("unique,sparse")
	if _, ok := entries[0]["unique"]; !ok {
		t.Errorf("thiếu thuộc tính unique, nhận %v", entries[0])
	}
	if _, ok := entries[0]["sparse"]; !ok {
		t.Errorf("thiếu thuộc tính sparse, nhận %v", entries[0])
	}
}

func TestParseOrder(t *testing.T) {
	if parseOrder("single:1,order:-1") != -1 {
		t.Error("order:-1 phải trả về -1")
	}
	if parseOrder("single:1") != 1 {
		t.Error("không có order phải mặc định 1")
	}
}

func TestBsonFieldName(t *testing.T) {
	type sample struct {
		Plain     string `bson:"plain"`
		WithOpts  string `bson:"assignmentNumber,omitempty"`
		Skipped   string `bson:"-"`
		NoBsonTag string
	}

	typ := reflect.TypeOf(sample{})

	cases := []struct {
		field string
		want  string
	}{
		{"Plain", "plain"},
		{"WithOpts", "assignmentNumber"}, // omitempty phải bị cắt khỏi tên index
		{"Skipped", ""},
		{"NoBsonTag", ""},
	}
	for _, tc := range cases {
		field, _ := typ.FieldByName(tc.field)
		if got := bsonFieldName(field); got != tc.want {
			t.Errorf("bsonFieldName(%s) = %q, muốn %q", tc.field, got, tc.want)
		}
	}
}
