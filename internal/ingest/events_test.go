package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/mkersting/aftermath/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEvents(t *testing.T) {
	in := strings.Join([]string{
		"Event name,Time of Event",
		"Iraq invades Kuwait,1990-08-02",
		"September 11 attacks,2001-09-11",
	}, "\n")

	events, err := LoadEvents(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "Iraq invades Kuwait", events[0].Name)
	assert.Equal(t, time.Date(1990, 8, 2, 0, 0, 0, 0, time.UTC), events[0].Date)
	assert.Equal(t, "September 11 attacks", events[1].Name)
}

func TestLoadEvents_PreservesFileOrder(t *testing.T) {
	// Deliberately not chronological: order is the author's contract.
	in := strings.Join([]string{
		"Event name,Time of Event",
		"later,2001-09-11",
		"earlier,1990-08-02",
	}, "\n")

	events, err := LoadEvents(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, "later", events[0].Name)
	assert.Equal(t, "earlier", events[1].Name)
}

func TestLoadEvents_DateRangeTakesStart(t *testing.T) {
	in := "Event name,Time of Event\n" +
		"Cuban Missile Crisis,1962-10-16 – 1962-10-28\n"

	events, err := LoadEvents(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, time.Date(1962, 10, 16, 0, 0, 0, 0, time.UTC), events[0].Date)
}

func TestLoadEvents_AlternateHeaders(t *testing.T) {
	in := "Event,Date\nGulf War,1990-08-02\n"

	events, err := LoadEvents(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, "Gulf War", events[0].Name)
}

func TestLoadEvents_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"bad date", "Event name,Time of Event\nev,once upon a time\n"},
		{"empty name", "Event name,Time of Event\n ,1990-08-02\n"},
		{"missing columns", "Title,When\nev,1990-08-02\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadEvents(strings.NewReader(tt.in))
			assert.ErrorIs(t, err, core.ErrMalformedInput)
		})
	}
}

func TestLoadEvents_Empty(t *testing.T) {
	_, err := LoadEvents(strings.NewReader("Event name,Time of Event\n"))
	assert.ErrorIs(t, err, core.ErrNoData)
}
