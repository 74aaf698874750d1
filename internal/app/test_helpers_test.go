package app_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/example/taysr/internal/core/render"
	"github.com/example/taysr/internal/ports/primary"
	"github.com/example/taysr/internal/ports/secondary"
)

// mockTaskRepo is an in-memory TaskRepository keyed by (guild, task id).
type mockTaskRepo struct {
	mu      sync.Mutex
	tasks   map[string]*secondary.TaskRecord
	failAll error
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[string]*secondary.TaskRecord)}
}

func taskKey(guildID, taskID string) string {
	return guildID + "/" + taskID
}

func (m *mockTaskRepo) Insert(_ context.Context, task *secondary.TaskRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return m.failAll
	}
	key := taskKey(task.GuildID, task.TaskID)
	if _, exists := m.tasks[key]; exists {
		return fmt.Errorf("%w: guild %s task %s", secondary.ErrDuplicateTask, task.GuildID, task.TaskID)
	}
	clone := *task
	m.tasks[key] = &clone
	return nil
}

func (m *mockTaskRepo) FindOpenByGuild(_ context.Context, guildID string) ([]*secondary.TaskRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return nil, m.failAll
	}
	var out []*secondary.TaskRecord
	for _, t := range m.tasks {
		if t.GuildID == guildID && t.Status == secondary.StatusOpen {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockTaskRepo) FindByGuild(_ context.Context, guildID string) ([]*secondary.TaskRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return nil, m.failAll
	}
	var out []*secondary.TaskRecord
	for _, t := range m.tasks {
		if t.GuildID == guildID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockTaskRepo) get(guildID, taskID string) *secondary.TaskRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tasks[taskKey(guildID, taskID)]
}

// mockCounterRepo is an in-memory CounterRepository.
type mockCounterRepo struct {
	mu        sync.Mutex
	sequences map[string]int
	failAll   error
}

func newMockCounterRepo() *mockCounterRepo {
	return &mockCounterRepo{sequences: make(map[string]int)}
}

func (m *mockCounterRepo) IncrementAndFetch(_ context.Context, guildID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return 0, m.failAll
	}
	m.sequences[guildID]++
	return m.sequences[guildID], nil
}

func (m *mockCounterRepo) Get(_ context.Context, guildID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return 0, m.failAll
	}
	return m.sequences[guildID], nil
}

func (m *mockCounterRepo) Set(_ context.Context, guildID string, sequence int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return m.failAll
	}
	m.sequences[guildID] = sequence
	return nil
}

func (m *mockCounterRepo) List(_ context.Context) ([]*secondary.CounterRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*secondary.CounterRecord
	for g, s := range m.sequences {
		out = append(out, &secondary.CounterRecord{GuildID: g, Sequence: s})
	}
	return out, nil
}

// mockConfigRepo is an in-memory ServerConfigRepository.
type mockConfigRepo struct {
	mu      sync.Mutex
	configs map[string]*secondary.ServerConfigRecord
}

func newMockConfigRepo() *mockConfigRepo {
	return &mockConfigRepo{configs: make(map[string]*secondary.ServerConfigRecord)}
}

func (m *mockConfigRepo) Get(_ context.Context, guildID string) (*secondary.ServerConfigRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cfg, ok := m.configs[guildID]
	if !ok {
		return nil, nil
	}
	clone := *cfg
	return &clone, nil
}

func (m *mockConfigRepo) Upsert(_ context.Context, cfg *secondary.ServerConfigRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *cfg
	m.configs[cfg.GuildID] = &clone
	return nil
}

func (m *mockConfigRepo) SetListMessageID(_ context.Context, guildID, messageID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cfg, ok := m.configs[guildID]
	if !ok {
		return fmt.Errorf("server config for guild %s not found", guildID)
	}
	cfg.TaskListMessageID = messageID
	return nil
}

func (m *mockConfigRepo) List(_ context.Context) ([]*secondary.ServerConfigRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*secondary.ServerConfigRecord
	for _, cfg := range m.configs {
		clone := *cfg
		out = append(out, &clone)
	}
	return out, nil
}

// mockChannels records calls to the ChannelProvider and simulates message
// lifecycle.
type mockChannels struct {
	mu sync.Mutex

	channels map[string]*secondary.ChannelInfo
	messages map[string][]render.Block
	nextID   int

	sends   []string // channel ids
	edits   []string // message ids
	deletes []string // message ids
	pins    []string // message ids

	sendErr   error
	editErr   error
	deleteErr error
	pinErr    error
}

func newMockChannels(channelIDs ...string) *mockChannels {
	m := &mockChannels{
		channels: make(map[string]*secondary.ChannelInfo),
		messages: make(map[string][]render.Block),
	}
	for _, id := range channelIDs {
		m.channels[id] = &secondary.ChannelInfo{ID: id, Name: "chan-" + id, Postable: true}
	}
	return m
}

func (m *mockChannels) FetchChannel(_ context.Context, channelID string) (*secondary.ChannelInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, ok := m.channels[channelID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", secondary.ErrChannelUnavailable, channelID)
	}
	return ch, nil
}

func (m *mockChannels) SendMessage(_ context.Context, channelID string, blocks []render.Block) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return "", m.sendErr
	}
	m.nextID++
	id := fmt.Sprintf("msg-%d", m.nextID)
	m.messages[id] = blocks
	m.sends = append(m.sends, channelID)
	return id, nil
}

func (m *mockChannels) EditMessage(_ context.Context, _, messageID string, blocks []render.Block) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.editErr != nil {
		return m.editErr
	}
	if _, ok := m.messages[messageID]; !ok {
		return fmt.Errorf("%w: %s", secondary.ErrMessageNotFound, messageID)
	}
	m.messages[messageID] = blocks
	m.edits = append(m.edits, messageID)
	return nil
}

func (m *mockChannels) DeleteMessage(_ context.Context, _, messageID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, messageID)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.messages[messageID]; !ok {
		return fmt.Errorf("%w: %s", secondary.ErrMessageNotFound, messageID)
	}
	delete(m.messages, messageID)
	return nil
}

func (m *mockChannels) PinMessage(_ context.Context, _, messageID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pinErr != nil {
		return m.pinErr
	}
	m.pins = append(m.pins, messageID)
	return nil
}

// mockTaskList records Sync calls.
type mockTaskList struct {
	mu      sync.Mutex
	calls   []primary.SyncMode
	syncErr error
}

func (m *mockTaskList) Sync(_ context.Context, _ string, mode primary.SyncMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, mode)
	return m.syncErr
}

func (m *mockTaskList) syncCalls() []primary.SyncMode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]primary.SyncMode(nil), m.calls...)
}

var (
	_ secondary.TaskRepository         = (*mockTaskRepo)(nil)
	_ secondary.CounterRepository      = (*mockCounterRepo)(nil)
	_ secondary.ServerConfigRepository = (*mockConfigRepo)(nil)
	_ secondary.ChannelProvider        = (*mockChannels)(nil)
	_ primary.TaskListService          = (*mockTaskList)(nil)
)
