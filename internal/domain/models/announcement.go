// internal/domain/models/announcement.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Announcement is a time-bound notice shown to students and staff.
//
// ID is assigned by the store on insert and is the only lookup key.
// StartDate is optional; ExpirationDate is required on create.
type Announcement struct {
	ID             string     `bson:"_id,omitempty" json:"_id,omitempty"`
	Message        string     `bson:"message" json:"message"`
	StartDate      *time.Time `bson:"start_date,omitempty" json:"start_date,omitempty"`
	ExpirationDate *time.Time `bson:"expiration_date,omitempty" json:"expiration_date,omitempty"`
}

// AnnouncementInput is a create or update payload with per-field presence.
//
// An "_id" or "id" key in the body is accepted and ignored; the route id (or
// the store, on create) is authoritative. Unknown keys are ignored.
type AnnouncementInput struct {
	Message        Field[string]
	StartDate      Field[time.Time]
	ExpirationDate Field[time.Time]
}

// Empty reports whether no updatable field was supplied.
func (in AnnouncementInput) Empty() bool {
	return !in.Message.Present && !in.StartDate.Present && !in.ExpirationDate.Present
}

// Fields lists the JSON keys that were supplied.
func (in AnnouncementInput) Fields() []string {
	var out []string
	if in.Message.Present {
		out = append(out, "message")
	}
	if in.StartDate.Present {
		out = append(out, "start_date")
	}
	if in.ExpirationDate.Present {
		out = append(out, "expiration_date")
	}
	return out
}

// UnmarshalJSON decodes the body into presence-tracking fields.
func (in *AnnouncementInput) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("request body must be a JSON object")
	}

	var out AnnouncementInput
	for key, val := range raw {
		switch key {
		case "message":
			if isNull(val) {
				return fmt.Errorf("message: must be a string")
			}
			var s string
			if err := json.Unmarshal(val, &s); err != nil {
				return fmt.Errorf("message: must be a string")
			}
			out.Message = Set(s)
		case "start_date":
			f, err := decodeTimeField(val)
			if err != nil {
				return fmt.Errorf("start_date: %w", err)
			}
			out.StartDate = f
		case "expiration_date":
			f, err := decodeTimeField(val)
			if err != nil {
				return fmt.Errorf("expiration_date: %w", err)
			}
			out.ExpirationDate = f
		}
	}
	*in = out
	return nil
}

// SetDocument returns the supplied fields as a bson document, in a stable
// order. Explicit nulls are stored as null.
func (in AnnouncementInput) SetDocument() bson.D {
	doc := bson.D{}
	if in.Message.Present {
		doc = append(doc, bson.E{Key: "message", Value: in.Message.Interface()})
	}
	if in.StartDate.Present {
		doc = append(doc, bson.E{Key: "start_date", Value: in.StartDate.Interface()})
	}
	if in.ExpirationDate.Present {
		doc = append(doc, bson.E{Key: "expiration_date", Value: in.ExpirationDate.Interface()})
	}
	return doc
}

// Apply copies the supplied fields onto a.
func (in AnnouncementInput) Apply(a *Announcement) {
	if in.Message.Present {
		a.Message = in.Message.Value
	}
	if in.StartDate.Present {
		a.StartDate = in.StartDate.Ptr()
	}
	if in.ExpirationDate.Present {
		a.ExpirationDate = in.ExpirationDate.Ptr()
	}
}

// Echo returns the id plus exactly the supplied fields, for responses that
// describe a write without re-reading the stored document.
func (in AnnouncementInput) Echo(id string) map[string]any {
	out := map[string]any{"_id": id}
	if in.Message.Present {
		out["message"] = in.Message.Value
	}
	if in.StartDate.Present {
		out["start_date"] = timeOrNil(in.StartDate)
	}
	if in.ExpirationDate.Present {
		out["expiration_date"] = timeOrNil(in.ExpirationDate)
	}
	return out
}

func timeOrNil(f Field[time.Time]) any {
	if f.Null {
		return nil
	}
	return f.Value
}

// timestampLayouts are tried in order; zone-less forms are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses the timestamp forms accepted in request bodies.
// Results are truncated to milliseconds, the precision of a BSON datetime.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC().Truncate(time.Millisecond), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

func decodeTimeField(val json.RawMessage) (Field[time.Time], error) {
	if isNull(val) {
		return Null[time.Time](), nil
	}
	var s string
	if err := json.Unmarshal(val, &s); err != nil {
		return Field[time.Time]{}, fmt.Errorf("must be a timestamp string")
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		return Field[time.Time]{}, err
	}
	return Set(t), nil
}

func isNull(val json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(val), []byte("null"))
}
