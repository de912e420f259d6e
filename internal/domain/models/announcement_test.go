package models

import (
	"encoding/json"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func TestAnnouncementInput_UnmarshalJSON(t *testing.T) {
	var in AnnouncementInput
	body := `{"_id":"x","message":"Hi","start_date":null,"expiration_date":"2025-01-01T00:00:00Z","extra":1}`
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !in.Message.HasValue() || in.Message.Value != "Hi" {
		t.Errorf("Message: got %+v", in.Message)
	}
	if !in.StartDate.Present || !in.StartDate.Null {
		t.Errorf("StartDate should be present and null, got %+v", in.StartDate)
	}
	want := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if !in.ExpirationDate.HasValue() || !in.ExpirationDate.Value.Equal(want) {
		t.Errorf("ExpirationDate: got %+v", in.ExpirationDate)
	}
}

func TestAnnouncementInput_UnmarshalJSON_Absent(t *testing.T) {
	var in AnnouncementInput
	if err := json.Unmarshal([]byte(`{}`), &in); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !in.Empty() {
		t.Errorf("expected empty input, got %+v", in)
	}
}

func TestAnnouncementInput_UnmarshalJSON_Errors(t *testing.T) {
	for _, body := range []string{
		`null`,
		`"text"`,
		`{"message":null}`,
		`{"message":true}`,
		`{"expiration_date":12}`,
		`{"start_date":"soon"}`,
	} {
		var in AnnouncementInput
		if err := json.Unmarshal([]byte(body), &in); err == nil {
			t.Errorf("%s: expected error", body)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-01-01T00:00:00Z", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2025-01-01T02:00:00+02:00", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2025-01-01T00:00:00.5", time.Date(2025, 1, 1, 0, 0, 0, 500000000, time.UTC)},
		{"2025-01-01T00:00:00.123456Z", time.Date(2025, 1, 1, 0, 0, 0, 123000000, time.UTC)},
		{"2025-01-01T00:00:00.9999999", time.Date(2025, 1, 1, 0, 0, 0, 999000000, time.UTC)},
		{"2025-01-01T09:30", time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC)},
		{"2025-01-01 09:30:15", time.Date(2025, 1, 1, 9, 30, 15, 0, time.UTC)},
		{"2025-01-01", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseTimestamp(tt.in)
		if err != nil {
			t.Errorf("%s: %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) || got.Location() != time.UTC {
			t.Errorf("%s: got %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseTimestamp("01/02/2025"); err == nil {
		t.Error("expected error for unsupported layout")
	}
}

func TestAnnouncementInput_SetDocument(t *testing.T) {
	exp := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	in := AnnouncementInput{
		ExpirationDate: Set(exp),
		StartDate:      Null[time.Time](),
	}
	doc := in.SetDocument()

	want := bson.D{
		{Key: "start_date", Value: nil},
		{Key: "expiration_date", Value: exp},
	}
	if len(doc) != len(want) {
		t.Fatalf("got %v, want %v", doc, want)
	}
	for i := range want {
		if doc[i].Key != want[i].Key || doc[i].Value != want[i].Value {
			t.Errorf("element %d: got %v, want %v", i, doc[i], want[i])
		}
	}
}

func TestAnnouncementInput_ApplyAndEcho(t *testing.T) {
	start := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	exp := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	a := Announcement{ID: "a1", Message: "old", StartDate: &start, ExpirationDate: &exp}

	in := AnnouncementInput{Message: Set("new"), StartDate: Null[time.Time]()}
	in.Apply(&a)
	if a.Message != "new" || a.StartDate != nil || a.ExpirationDate == nil {
		t.Errorf("unexpected result: %+v", a)
	}

	echo := in.Echo("a1")
	if len(echo) != 3 || echo["_id"] != "a1" || echo["message"] != "new" {
		t.Errorf("unexpected echo: %v", echo)
	}
	if v, ok := echo["start_date"]; !ok || v != nil {
		t.Errorf("start_date should be echoed as null, got %v", v)
	}
}

func TestAnnouncementInput_Fields(t *testing.T) {
	in := AnnouncementInput{Message: Set("m"), ExpirationDate: Null[time.Time]()}
	got := in.Fields()
	if len(got) != 2 || got[0] != "message" || got[1] != "expiration_date" {
		t.Errorf("got %v", got)
	}
	if len(AnnouncementInput{}.Fields()) != 0 {
		t.Error("empty input should list no fields")
	}
}
