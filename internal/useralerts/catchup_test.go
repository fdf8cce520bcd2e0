package useralerts

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/cloudalerts/internal/directory"
	"github.com/iudanet/cloudalerts/internal/models"
)

func catchupJSON(t *testing.T, alerts ...map[string]any) []byte {
	t.Helper()
	payload := map[string]any{
		"lsn": models.Handle(5).Encode(8),
		"fsn": models.Handle(3).Encode(8),
		"ltd": 100,
		"u": []map[string]any{
			{"u": testUser.Encode(models.UserHandleSize), "m": "bob@example.com", "n": "Bob"},
			{"u": models.Handle(8).Encode(models.UserHandleSize), "m": "", "m2": []string{"carol@example.com"}},
		},
		"c": alerts,
	}
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return data
}

func TestProcessCatchup(t *testing.T) {
	u, _ := newTestEngine(t, nil)
	u.BeginCatchup()
	require.Equal(t, CatchingUp, u.CatchupState())

	data := catchupJSON(t,
		map[string]any{"t": "c", "u": testUser.Encode(8), "c": 1, "td": 5000},
		map[string]any{"t": "share", "u": models.Handle(8).Encode(8), "n": models.Handle(10).Encode(6), "td": 50},
		map[string]any{"t": "zzz", "td": 10},
	)
	require.NoError(t, u.ProcessCatchup(data))

	assert.Equal(t, CaughtUp, u.CatchupState())
	assert.True(t, u.CatchupDone())
	assert.Empty(t, u.Notifications())
	require.Equal(t, 2, u.Len())

	contact := u.Alerts()[0]
	assert.Equal(t, uint32(1), contact.Common().ID)
	assert.True(t, contact.Common().Seen)
	assert.Equal(t, "bob@example.com", contact.Common().UserEmail)

	share := u.Alerts()[1]
	assert.Equal(t, uint32(2), share.Common().ID)
	assert.False(t, share.Common().Seen)
	assert.Equal(t, "carol@example.com", share.Common().UserEmail)

	assert.Equal(t, models.SeenMarkers{LastSeenNumber: 5, FirstSeqNumber: 3, LastTimeDelta: 100}, u.LastSeenMarkers())
}

func TestProcessCatchup_FiltersUnwanted(t *testing.T) {
	flags := models.DefaultAlertFlags()
	flags.ContactsEnabled = false
	u := New(testMe, nil, nil, nil, WithClock(func() int64 { return testNow }), WithFlags(flags))
	u.BeginCatchup()

	data := catchupJSON(t,
		map[string]any{"t": "c", "u": testUser.Encode(8), "c": 1, "td": 5000},
		map[string]any{"t": "psts", "r": "s", "p": 1, "td": 40},
	)
	require.NoError(t, u.ProcessCatchup(data))

	require.Equal(t, 1, u.Len())
	assert.Equal(t, models.TypePayment, u.Alerts()[0].Common().Type)
	assert.Equal(t, uint32(1), u.Alerts()[0].Common().ID)
}

func TestProcessCatchup_DirectoryEmailWins(t *testing.T) {
	dir := directory.NewMemory()
	dir.PutUser(models.User{Handle: testUser, Email: "robert@example.com"})
	u, _ := newTestEngine(t, dir)
	u.BeginCatchup()

	data := catchupJSON(t, map[string]any{"t": "c", "u": testUser.Encode(8), "c": 1, "td": 5000})
	require.NoError(t, u.ProcessCatchup(data))

	require.Equal(t, 1, u.Len())
	assert.Equal(t, "robert@example.com", u.Alerts()[0].Common().UserEmail)
}

func TestProcessCatchup_Malformed(t *testing.T) {
	u, _ := newTestEngine(t, nil)
	u.BeginCatchup()

	err := u.ProcessCatchup([]byte(`{"c": [`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedReplay)
	assert.True(t, u.CatchupDone())
	assert.Equal(t, 0, u.Len())
}

func TestProcessCatchup_KeepsGoodRecords(t *testing.T) {
	share := fmt.Sprintf(`{"t":"share","u":%q,"n":%q,"td":50}`,
		testUser.Encode(models.UserHandleSize), models.Handle(10).Encode(models.NodeHandleSize))

	tests := []struct {
		name    string
		data    string
		markers models.SeenMarkers
	}{
		{
			name:    "bad record after a good one",
			data:    `{"ltd":100,"c":[` + share + `,5]}`,
			markers: models.SeenMarkers{LastSeenNumber: models.Undef, FirstSeqNumber: models.Undef, LastTimeDelta: 100},
		},
		{
			name:    "bad record before a good one",
			data:    `{"c":["x",` + share + `]}`,
			markers: models.SeenMarkers{LastSeenNumber: models.Undef, FirstSeqNumber: models.Undef},
		},
		{
			name:    "ill-typed markers",
			data:    `{"lsn":12345,"fsn":true,"ltd":"x","c":[` + share + `]}`,
			markers: models.SeenMarkers{LastSeenNumber: models.Undef, FirstSeqNumber: models.Undef},
		},
		{
			name:    "ill-typed users",
			data:    `{"u":{"u":"x"},"ltd":100,"c":[` + share + `]}`,
			markers: models.SeenMarkers{LastSeenNumber: models.Undef, FirstSeqNumber: models.Undef, LastTimeDelta: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, _ := newTestEngine(t, nil)
			u.BeginCatchup()

			require.NoError(t, u.ProcessCatchup([]byte(tt.data)))

			assert.True(t, u.CatchupDone())
			require.Equal(t, 1, u.Len())
			assert.Equal(t, models.TypeNewShare, u.Alerts()[0].Common().Type)
			assert.Equal(t, tt.markers, u.LastSeenMarkers())
		})
	}
}

func TestProcessCatchup_NotAnObject(t *testing.T) {
	u, _ := newTestEngine(t, nil)
	u.BeginCatchup()

	err := u.ProcessCatchup([]byte(`[1,2,3]`))
	assert.ErrorIs(t, err, ErrMalformedReplay)
	assert.True(t, u.CatchupDone())
	assert.Equal(t, 0, u.Len())
}

func TestCompleteCatchup_WithoutBegin(t *testing.T) {
	u, _ := newTestEngine(t, nil)
	u.CompleteCatchup()
	assert.Equal(t, CaughtUp, u.CatchupState())

	u.BeginCatchup()
	assert.Equal(t, CaughtUp, u.CatchupState(), "begin is ignored once started")
}

func TestRestoreSeenMarkers(t *testing.T) {
	u, _ := newTestEngine(t, nil)
	m := models.SeenMarkers{LastSeenNumber: 9, FirstSeqNumber: 2, LastTimeDelta: 60}

	u.RestoreSeenMarkers(m)
	assert.Equal(t, m, u.LastSeenMarkers())
}

func TestCatchupState_String(t *testing.T) {
	assert.Equal(t, "idle", CatchupIdle.String())
	assert.Equal(t, "catching-up", CatchingUp.String())
	assert.Equal(t, "caught-up", CaughtUp.String())
	assert.Equal(t, "unknown", CatchupState(42).String())
}
