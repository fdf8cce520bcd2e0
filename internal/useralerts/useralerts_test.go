package useralerts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/cloudalerts/internal/directory"
	"github.com/iudanet/cloudalerts/internal/models"
	"github.com/iudanet/cloudalerts/pkg/api"
)

const (
	testNow  int64         = 10000
	testMe   models.Handle = 1
	testUser models.Handle = 7
)

func newTestEngine(t *testing.T, dir directory.Directory) (*UserAlerts, *CommandQueueMock) {
	t.Helper()
	cmds := &CommandQueueMock{
		SetLastAcknowledgedFunc: func(tag int) {},
	}
	u := New(testMe, dir, cmds, nil, WithClock(func() int64 { return testNow }))
	return u, cmds
}

// caughtUpEngine returns an engine that already finished an empty catch-up.
func caughtUpEngine(t *testing.T, dir directory.Directory) (*UserAlerts, *CommandQueueMock) {
	t.Helper()
	u, cmds := newTestEngine(t, dir)
	u.BeginCatchup()
	u.CompleteCatchup()
	require.True(t, u.CatchupDone())
	return u, cmds
}

func rawAlert(t *testing.T, fields map[string]any) *api.RawAlert {
	t.Helper()
	data, err := json.Marshal(fields)
	require.NoError(t, err)

	var raw api.RawAlert
	require.NoError(t, json.Unmarshal(data, &raw))
	return &raw
}

func newNodes(u *UserAlerts, user, parent models.Handle, ts int64, files ...models.Handle) *models.NewSharedNodes {
	m := make(models.HandleAlertTypes)
	for _, h := range files {
		m[h] = models.TypeNewSharedNodes
	}
	return models.NewSharedNodesAlert(user, parent, ts, u.NextID(), m, nil)
}

func ids(alerts []models.Alert) []uint32 {
	out := make([]uint32, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, a.Common().ID)
	}
	return out
}

func TestNew_Defaults(t *testing.T) {
	u := New(testMe, nil, nil, nil)

	assert.Equal(t, testMe, u.Me())
	assert.Equal(t, CatchupIdle, u.CatchupState())
	assert.False(t, u.CatchupDone())
	assert.Equal(t, models.DefaultAlertFlags(), u.Flags())
	assert.Equal(t, 0, u.Len())
	assert.Equal(t, uint32(1), u.NextID())
	assert.Equal(t, uint32(2), u.NextID())
}

func TestAddRaw_UnknownTypeConsumesNoID(t *testing.T) {
	u, _ := caughtUpEngine(t, nil)

	assert.False(t, u.AddRaw(rawAlert(t, map[string]any{"t": "zzz"})))
	assert.False(t, u.AddRaw(nil))
	assert.True(t, u.AddRaw(rawAlert(t, map[string]any{"t": "psts", "r": "s", "p": 2})))

	require.Equal(t, 1, u.Len())
	a := u.Alerts()[0]
	assert.Equal(t, uint32(1), a.Common().ID)

	p, ok := a.(*models.Payment)
	require.True(t, ok)
	assert.True(t, p.Success)
	assert.Equal(t, "PRO II", p.PlanName())
}

func TestAdd_CaughtUpQueuesNotification(t *testing.T) {
	u, _ := caughtUpEngine(t, nil)

	a := models.NewTakedown(true, false, 50, 2000, u.NextID())
	u.Add(a)

	assert.Equal(t, models.TagExternal, a.Tag)
	assert.Equal(t, []uint32{a.ID}, ids(u.Notifications()))
	assert.Equal(t, []uint32{a.ID}, ids(u.TakeNotifications()))
	assert.Empty(t, u.Notifications())
}

func TestAdd_BeforeCatchupNotQueued(t *testing.T) {
	u, _ := newTestEngine(t, nil)
	u.BeginCatchup()

	a := models.NewTakedown(true, false, 50, 2000, u.NextID())
	u.Add(a)

	assert.Equal(t, 1, u.Len())
	assert.Equal(t, models.TagUnset, a.Tag)
	assert.Empty(t, u.Notifications())
}

func TestAdd_DiscardsCatchupDuplicates(t *testing.T) {
	u, _ := newTestEngine(t, nil)
	u.BeginCatchup()
	u.Add(models.NewTakedown(true, false, 50, 500, u.NextID()))
	u.CompleteCatchup()

	u.Add(models.NewTakedown(true, false, 51, 400, u.NextID()))
	assert.Equal(t, 1, u.Len(), "older than the newest replayed alert")

	u.Add(models.NewTakedown(true, false, 52, 500, u.NextID()))
	u.Add(models.NewTakedown(true, false, 53, 600, u.NextID()))
	assert.Equal(t, 3, u.Len())
}

func TestAdd_MergesNewNodesIntoTail(t *testing.T) {
	u, _ := caughtUpEngine(t, nil)

	first := newNodes(u, testUser, 10, 1000, 100)
	u.Add(first)
	u.Add(newNodes(u, testUser, 10, 1100, 101))

	require.Equal(t, 1, u.Len())
	assert.Equal(t, []models.Handle{100, 101}, first.FileNodeHandles)
	assert.Equal(t, []uint32{first.ID}, ids(u.Notifications()), "tail already queued")

	u.TakeNotifications()
	first.Seen = true
	u.Add(newNodes(u, testUser, 10, 1200, 102))
	assert.Equal(t, 1, u.Len())
	assert.False(t, first.Seen)
	assert.Equal(t, []uint32{first.ID}, ids(u.Notifications()))
}

func TestAdd_NoMerge(t *testing.T) {
	tests := []struct {
		name   string
		second func(u *UserAlerts) models.Alert
	}{
		{
			name: "outside window",
			second: func(u *UserAlerts) models.Alert {
				return newNodes(u, testUser, 10, 1000+MergeWindow, 101)
			},
		},
		{
			name: "different user",
			second: func(u *UserAlerts) models.Alert {
				return newNodes(u, 8, 10, 1001, 101)
			},
		},
		{
			name: "different parent",
			second: func(u *UserAlerts) models.Alert {
				return newNodes(u, testUser, 11, 1001, 101)
			},
		},
		{
			name: "different variant",
			second: func(u *UserAlerts) models.Alert {
				return models.NewUpdatedSharedNode(testUser, 1001, u.NextID(),
					models.HandleAlertTypes{101: models.TypeUpdatedSharedNode}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, _ := caughtUpEngine(t, nil)
			u.Add(newNodes(u, testUser, 10, 1000, 100))
			u.Add(tt.second(u))
			assert.Equal(t, 2, u.Len())
		})
	}
}

func TestAdd_MergesRemovedAndUpdated(t *testing.T) {
	u, _ := caughtUpEngine(t, nil)

	removed := models.NewRemovedSharedNode(testUser, 1000, u.NextID(),
		models.HandleAlertTypes{100: models.TypeRemovedSharedNode}, nil)
	u.Add(removed)
	u.Add(models.NewRemovedSharedNode(testUser, 1010, u.NextID(),
		nil, models.HandleAlertTypes{10: models.TypeRemovedSharedNode}))

	updated := models.NewUpdatedSharedNode(testUser, 1020, u.NextID(),
		models.HandleAlertTypes{200: models.TypeUpdatedSharedNode}, nil)
	u.Add(updated)
	u.Add(models.NewUpdatedSharedNode(testUser, 1030, u.NextID(),
		models.HandleAlertTypes{201: models.TypeUpdatedSharedNode}, nil))

	require.Equal(t, 2, u.Len())
	assert.Equal(t, []models.Handle{100, 10}, removed.NodeHandles)
	assert.Equal(t, []models.Handle{200, 201}, updated.NodeHandles)
}

func TestAdd_PaymentRetiresReminders(t *testing.T) {
	u, _ := caughtUpEngine(t, nil)

	reminder := models.NewPaymentReminder(20000, 1000, u.NextID())
	u.Add(reminder)
	u.TakeNotifications()

	failed := models.NewPayment(false, 1, 1100, u.NextID())
	u.Add(failed)
	assert.True(t, reminder.Relevant)

	paid := models.NewPayment(true, 1, 1200, u.NextID())
	u.Add(paid)
	assert.False(t, reminder.Relevant)
	assert.Contains(t, ids(u.Notifications()), reminder.ID)
	assert.Contains(t, ids(u.Notifications()), paid.ID)
}

func TestAdd_ResolvesEmailAndSharePath(t *testing.T) {
	dir := directory.NewMemory()
	dir.PutUser(models.User{Handle: testUser, Email: "bob@example.com"})
	dir.PutNode(models.Node{Handle: 1, Parent: models.Undef, Kind: models.RootNode})
	dir.PutNode(models.Node{Handle: 10, Parent: 1, Name: "docs", Kind: models.FolderNode})
	u, _ := caughtUpEngine(t, dir)

	ds := models.NewDeletedShare(testUser, "", testUser, 10, 1000, u.NextID())
	u.Add(ds)

	assert.Equal(t, "bob@example.com", ds.UserEmail)
	assert.Equal(t, "docs", ds.FolderName)
	assert.Equal(t, "/docs", ds.FolderPath)
}

func TestProvisional(t *testing.T) {
	tests := []struct {
		name       string
		originator models.Handle
		want       int
	}{
		{name: "own action discarded", originator: testMe, want: 0},
		{name: "foreign action committed", originator: testUser, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, _ := caughtUpEngine(t, nil)

			u.StartProvisional()
			u.Add(models.NewContactChange(models.ContactEstablished, testUser, "", 1000, u.NextID()))
			assert.Equal(t, 1, u.ProvisionalCount())
			assert.Equal(t, 0, u.Len())

			u.EvalProvisional(tt.originator)
			assert.Equal(t, 0, u.ProvisionalCount())
			assert.Equal(t, tt.want, u.Len())
		})
	}
}

func TestProvisional_OtherVariantsAlwaysEligible(t *testing.T) {
	u, _ := caughtUpEngine(t, nil)

	u.StartProvisional()
	u.Add(models.NewShareAlert(10, testUser, "", 1000, u.NextID()))
	u.EvalProvisional(testMe)

	assert.Equal(t, 1, u.Len())
}

func TestAcknowledgeAll(t *testing.T) {
	u, cmds := newTestEngine(t, nil)
	u.BeginCatchup()
	replayed := models.NewTakedown(true, false, 50, testNow-10, u.NextID())
	u.Add(replayed)
	u.state.lastTimeDelta = 100
	u.CompleteCatchup()
	require.False(t, replayed.Seen)

	live := models.NewTakedown(true, false, 51, testNow, u.NextID())
	u.Add(live)
	u.TakeNotifications()

	u.AcknowledgeAll(5)

	assert.True(t, replayed.Seen)
	assert.True(t, live.Seen)
	assert.Equal(t, 5, replayed.Tag)
	assert.Equal(t, models.TagExternal, live.Tag)
	assert.ElementsMatch(t, []uint32{replayed.ID, live.ID}, ids(u.Notifications()))
	calls := cmds.SetLastAcknowledgedCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, 5, calls[0].Tag)
}

func TestAcknowledgeAll_NoCommandQueue(t *testing.T) {
	u := New(testMe, nil, nil, nil, WithClock(func() int64 { return testNow }))
	u.BeginCatchup()
	u.CompleteCatchup()
	a := models.NewTakedown(true, false, 50, testNow, u.NextID())
	u.Add(a)

	assert.NotPanics(t, func() { u.AcknowledgeAll(3) })
	assert.True(t, a.Seen)
}

func TestOnAcknowledgeReceived(t *testing.T) {
	u, _ := newTestEngine(t, nil)
	u.BeginCatchup()
	a := models.NewTakedown(true, false, 50, testNow, u.NextID())
	u.Add(a)

	u.OnAcknowledgeReceived()
	assert.False(t, a.Seen, "ignored before catch-up")

	u.state.lastTimeDelta = 100
	u.CompleteCatchup()
	u.OnAcknowledgeReceived()

	assert.True(t, a.Seen)
	assert.Equal(t, models.TagExternal, a.Tag)
	assert.Equal(t, []uint32{a.ID}, ids(u.Notifications()))
}

func TestClear(t *testing.T) {
	u, _ := caughtUpEngine(t, nil)
	u.Add(models.NewTakedown(true, false, 50, 1000, u.NextID()))
	u.Add(models.NewTakedown(true, false, 51, 2000, u.NextID()))

	u.Clear()

	assert.Equal(t, 0, u.Len())
	assert.Empty(t, u.Notifications())
	assert.Equal(t, CatchupIdle, u.CatchupState())
	assert.Equal(t, models.SeenMarkers{LastSeenNumber: models.Undef, FirstSeqNumber: models.Undef}, u.LastSeenMarkers())
	assert.Equal(t, uint32(1), u.NextID())
}

func TestAlertLookup(t *testing.T) {
	u, _ := caughtUpEngine(t, nil)
	a := models.NewTakedown(false, true, 50, 1000, u.NextID())
	u.Add(a)

	got, ok := u.Alert(a.ID)
	require.True(t, ok)
	assert.Same(t, a, got)

	_, ok = u.Alert(a.ID + 1)
	assert.False(t, ok)
}

func TestDecode_Variants(t *testing.T) {
	u, _ := caughtUpEngine(t, nil)
	user := testUser.Encode(models.UserHandleSize)
	node := func(h models.Handle) string { return h.Encode(models.NodeHandleSize) }

	t.Run("new shared nodes reverse wire order", func(t *testing.T) {
		a := alertFromRaw(rawAlert(t, map[string]any{
			"t": "put", "u": user, "n": node(10), "td": 30,
			"f": []map[string]any{
				{"h": node(100), "t": 0},
				{"h": node(101), "t": 0},
				{"h": node(11), "t": 1},
				{"h": node(12), "t": 4},
			},
		}), 1, u.Now())

		nn, ok := a.(*models.NewSharedNodes)
		require.True(t, ok)
		assert.Equal(t, testUser, nn.UserHandle)
		assert.Equal(t, models.Handle(10), nn.ParentHandle)
		assert.Equal(t, testNow-30, nn.Timestamp)
		assert.Equal(t, []models.Handle{101, 100}, nn.FileNodeHandles)
		assert.Equal(t, []models.Handle{11}, nn.FolderNodeHandles)
	})

	t.Run("incoming pending contact", func(t *testing.T) {
		a := alertFromRaw(rawAlert(t, map[string]any{
			"t": "ipc", "p": models.Handle(99).Encode(models.PCRHandleSize), "rts": 500,
		}), 2, u.Now())

		ipc, ok := a.(*models.IncomingPendingContact)
		require.True(t, ok)
		assert.Equal(t, models.Handle(99), ipc.UserHandle)
		assert.True(t, ipc.RequestWasReminded)
		assert.False(t, ipc.RequestWasDeleted)
		assert.Equal(t, int64(500), ipc.Timestamp)
	})

	t.Run("contact change out of range", func(t *testing.T) {
		a := alertFromRaw(rawAlert(t, map[string]any{"t": "c", "c": 9}), 3, u.Now())
		assert.False(t, a.Common().Relevant)
	})

	t.Run("takedown reinstate", func(t *testing.T) {
		a := alertFromRaw(rawAlert(t, map[string]any{"t": "ph", "down": 0, "h": node(50)}), 4, u.Now())
		td, ok := a.(*models.Takedown)
		require.True(t, ok)
		assert.True(t, td.IsReinstate)
		assert.False(t, td.IsTakedown)
		assert.True(t, td.Relevant)
	})

	t.Run("reminder expiry defaults to timestamp", func(t *testing.T) {
		a := alertFromRaw(rawAlert(t, map[string]any{"t": "pses", "td": 100}), 5, u.Now())
		r, ok := a.(*models.PaymentReminder)
		require.True(t, ok)
		assert.Equal(t, testNow-100, r.ExpiryTime)
	})

	t.Run("outgoing update relevance", func(t *testing.T) {
		a := alertFromRaw(rawAlert(t, map[string]any{"t": "upco", "s": 1}), 6, u.Now())
		assert.False(t, a.Common().Relevant)
	})
}

func TestIsUnwantedAlert(t *testing.T) {
	tests := []struct {
		name   string
		flags  func(f *models.AlertFlags)
		typ    models.AlertType
		action int
		want   bool
	}{
		{name: "defaults keep everything", flags: func(*models.AlertFlags) {}, typ: models.TypeNewSharedNodes, action: -1},
		{name: "cloud disabled", flags: func(f *models.AlertFlags) { f.CloudEnabled = false }, typ: models.TypeNewShare, action: -1, want: true},
		{name: "cloud disabled keeps payments", flags: func(f *models.AlertFlags) { f.CloudEnabled = false }, typ: models.TypePayment, action: -1},
		{name: "new files off", flags: func(f *models.AlertFlags) { f.CloudNewFiles = false }, typ: models.TypeNewSharedNodes, action: -1, want: true},
		{name: "del share off", flags: func(f *models.AlertFlags) { f.CloudDelShare = false }, typ: models.TypeDeletedShare, action: -1, want: true},
		{name: "contacts disabled", flags: func(f *models.AlertFlags) { f.ContactsEnabled = false }, typ: models.TypeUpdatedPendingContactIncoming, action: 1, want: true},
		{name: "fcr in off", flags: func(f *models.AlertFlags) { f.ContactsFcrIn = false }, typ: models.TypeIncomingPendingContact, action: -1, want: true},
		{name: "fcr del off drops deletion", flags: func(f *models.AlertFlags) { f.ContactsFcrDel = false }, typ: models.TypeContactChange, action: models.ContactDeleted, want: true},
		{name: "fcr del off keeps established", flags: func(f *models.AlertFlags) { f.ContactsFcrDel = false }, typ: models.TypeContactChange, action: models.ContactEstablished},
		{name: "fcr acpt off drops accepted", flags: func(f *models.AlertFlags) { f.ContactsFcrAcpt = false }, typ: models.TypeUpdatedPendingContactOutgoing, action: 2, want: true},
		{name: "fcr acpt off keeps denied", flags: func(f *models.AlertFlags) { f.ContactsFcrAcpt = false }, typ: models.TypeUpdatedPendingContactOutgoing, action: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := models.DefaultAlertFlags()
			tt.flags(&flags)
			u := New(testMe, nil, nil, nil, WithFlags(flags))
			assert.Equal(t, tt.want, u.IsUnwantedAlert(tt.typ, tt.action))
		})
	}
}
