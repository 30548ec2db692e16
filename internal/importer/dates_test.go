package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseIssueDate(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"russian long form", "9 января 2025 г.", time.Date(2025, time.January, 9, 0, 0, 0, 0, time.UTC)},
		{"russian without suffix", "23 августа 1997", time.Date(1997, time.August, 23, 0, 0, 0, 0, time.UTC)},
		{"uppercase month", "1 Мая 2020 г.", time.Date(2020, time.May, 1, 0, 0, 0, 0, time.UTC)},
		{"dotted fallback", "02.11.2019", time.Date(2019, time.November, 2, 0, 0, 0, 0, time.UTC)},
		{"dotted single digits", "2.3.2019", time.Date(2019, time.March, 2, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseIssueDate(tc.raw, 1990))
		})
	}
}

func TestParseIssueDate_DefaultsToJanuaryFirst(t *testing.T) {
	want := time.Date(1995, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, want, ParseIssueDate("выпуск без даты", 1995))
	assert.Equal(t, want, ParseIssueDate("", 1995))
	// unknown month name falls through to the default as well
	assert.Equal(t, want, ParseIssueDate("9 темберя 2025 г.", 1995))
}
