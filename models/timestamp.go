// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

package models

import "time"

// TimestampLayout is the form JavaScript's Date.toISOString writes, so data
// files created by the earlier Node version keep their exact text.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp is a UTC instant with millisecond precision.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.UTC().Truncate(time.Millisecond)}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	b := make([]byte, 0, len(TimestampLayout)+2)
	b = append(b, '"')
	b = t.UTC().AppendFormat(b, TimestampLayout)
	return append(b, '"'), nil
}

// UnmarshalJSON accepts any RFC 3339 time and normalizes it.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var parsed time.Time
	if err := parsed.UnmarshalJSON(data); err != nil {
		return err
	}
	*t = NewTimestamp(parsed)
	return nil
}
