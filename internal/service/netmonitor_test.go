package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/anikeenko/psysync/internal/adapter"
	"github.com/anikeenko/psysync/internal/logger"
	"github.com/anikeenko/psysync/internal/mock"
	"github.com/anikeenko/psysync/models"
)

func newTestMonitor(t *testing.T, ctrl *gomock.Controller) (*NetworkMonitor, *Processor, *Queue, *adapter.Registry, *Observers, *mock.MockConnectivityProbe) {
	t.Helper()

	repo := newMemRepo()
	queue := NewQueue(repo, logger.Nop())
	registry := adapter.NewRegistry()
	observers := NewObservers()
	processor := NewProcessor(queue, registry, observers, logger.Nop())
	probe := mock.NewMockConnectivityProbe(ctrl)
	monitor := NewNetworkMonitor(probe, processor, queue, observers, time.Hour, logger.Nop())

	return monitor, processor, queue, registry, observers, probe
}

func waitNotification(t *testing.T, ch <-chan StatusNotification) StatusNotification {
	t.Helper()

	select {
	case n := <-ch:
		return n
	case <-time.After(2 * time.Second):
		t.Fatal("no status notification arrived")
		return StatusNotification{}
	}
}

func TestNetworkMonitor_OfflineToOnlineFlushesQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	monitor, _, queue, registry, observers, probe := newTestMonitor(t, ctrl)

	handler := mock.NewMockCommitHandler(ctrl)
	handler.EXPECT().Commit(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	registry.Register("test-result", handler)

	// Очередь накапливается, пока сеть недоступна.
	ids := enqueueN(t, queue, "test-result", 2)

	notifications := make(chan StatusNotification, 1)
	observers.Register(func(n StatusNotification) {
		notifications <- n
	})

	probe.EXPECT().Online(gomock.Any()).Return(true)
	monitor.check(context.Background())

	n := waitNotification(t, notifications)
	assert.Equal(t, models.StatusCompleted, n.Status)
	assert.True(t, monitor.Online())

	for _, id := range ids {
		item, err := queue.Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, item.Status)
	}

	// Housekeeping after the flush leaves nothing behind.
	require.NoError(t, queue.RemoveCompleted(context.Background()))
	completed, err := queue.ListCompleted(context.Background())
	require.NoError(t, err)
	assert.Empty(t, completed)
}

func TestNetworkMonitor_OnlineToOfflineNotifiesWithoutMutation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	monitor, _, queue, _, observers, probe := newTestMonitor(t, ctrl)
	monitor.setOnline(true)

	ids := enqueueN(t, queue, "test-result", 1)

	notifications := make(chan StatusNotification, 1)
	observers.Register(func(n StatusNotification) {
		notifications <- n
	})

	probe.EXPECT().Online(gomock.Any()).Return(false)
	monitor.check(context.Background())

	n := waitNotification(t, notifications)
	assert.Equal(t, models.StatusFailed, n.Status, "offline edge reports a failed-equivalent aggregate")
	assert.False(t, monitor.Online())

	// Состояние элементов не трогается: обработка приостановлена, а не провалена.
	item, err := queue.Get(context.Background(), ids[0])
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, item.Status)
	assert.Zero(t, item.RetryCount)
}

func TestNetworkMonitor_SteadyStateIsQuiet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	monitor, _, _, _, observers, probe := newTestMonitor(t, ctrl)
	monitor.setOnline(true)

	notified := false
	observers.Register(func(StatusNotification) { notified = true })

	probe.EXPECT().Online(gomock.Any()).Return(true)
	monitor.check(context.Background())

	assert.False(t, notified, "no edge, no notification")
}

func TestNetworkMonitor_RunFlushesOnStartupWhenOnline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	monitor, _, queue, registry, observers, probe := newTestMonitor(t, ctrl)

	handler := mock.NewMockCommitHandler(ctrl)
	handler.EXPECT().Commit(gomock.Any(), gomock.Any()).Return(nil)
	registry.Register("test-result", handler)

	enqueueN(t, queue, "test-result", 1)

	notifications := make(chan StatusNotification, 1)
	observers.Register(func(n StatusNotification) {
		notifications <- n
	})

	probe.EXPECT().Online(gomock.Any()).Return(true)

	monitor.Run()
	defer monitor.Stop()

	n := waitNotification(t, notifications)
	assert.Equal(t, models.StatusCompleted, n.Status)
	assert.True(t, monitor.Online())
}

func TestNetworkMonitor_RunStaysQuietWhenStartingOffline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	monitor, _, queue, _, observers, probe := newTestMonitor(t, ctrl)

	enqueueN(t, queue, "test-result", 1)

	notified := false
	observers.Register(func(StatusNotification) { notified = true })

	probe.EXPECT().Online(gomock.Any()).Return(false)

	monitor.Run()
	monitor.Stop()

	assert.False(t, notified)
	assert.False(t, monitor.Online())

	item, err := queue.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, item, 1)
	assert.Equal(t, models.StatusPending, item[0].Status)
}

func TestNewClientServices_KickTriggersPassOnlyWhenOnline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	monitor, processor, queue, registry, observers, _ := newTestMonitor(t, ctrl)

	handler := mock.NewMockCommitHandler(ctrl)
	registry.Register("test-result", handler)

	notifications := make(chan StatusNotification, 1)
	observers.Register(func(n StatusNotification) {
		notifications <- n
	})

	// Same wiring as NewClientServices installs.
	queue.SetKick(func() {
		if monitor.Online() {
			go processor.ProcessQueue(context.Background())
		}
	})

	// Offline: the enqueue kick must not start a pass.
	_, err := queue.Enqueue(context.Background(), "test-result", json.RawMessage(`{}`))
	require.NoError(t, err)

	select {
	case <-notifications:
		t.Fatal("pass must not run while offline")
	case <-time.After(100 * time.Millisecond):
	}

	// Online: the next enqueue flushes both items.
	monitor.setOnline(true)
	handler.EXPECT().Commit(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	_, err = queue.Enqueue(context.Background(), "test-result", json.RawMessage(`{}`))
	require.NoError(t, err)

	n := waitNotification(t, notifications)
	assert.Equal(t, models.StatusCompleted, n.Status)
}
