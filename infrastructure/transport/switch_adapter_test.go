package transport

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosrabelo/vlaninv/domain/ports"
)

// MockClient implements the Client interface for testing
type MockClient struct {
	connected    bool
	connectError error
	connects     int
	disconnects  int
	executedCmds []string
	cmdResponses map[string]string
	cmdErrors    map[string]error
}

func (m *MockClient) Connect() error {
	m.connects++
	if m.connectError != nil {
		return m.connectError
	}
	m.connected = true
	return nil
}

func (m *MockClient) Disconnect() {
	m.disconnects++
	m.connected = false
}

func (m *MockClient) ExecuteCommand(cmd string) (string, error) {
	m.executedCmds = append(m.executedCmds, cmd)
	if err, exists := m.cmdErrors[cmd]; exists {
		return "", err
	}
	if resp, exists := m.cmdResponses[cmd]; exists {
		return resp, nil
	}
	return "mock response", nil
}

func (m *MockClient) IsConnected() bool {
	return m.connected
}

func TestSwitchAdapter_ImplementsRepository(t *testing.T) {
	var _ ports.SwitchRepository = NewSwitchAdapter(&MockClient{})
}

func TestSwitchAdapter_Connect(t *testing.T) {
	tests := []struct {
		name       string
		connectErr error
		expectConn bool
	}{
		{name: "successful connection", expectConn: true},
		{name: "connection error", connectErr: errors.New("connection failed")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockClient{connectError: tt.connectErr}
			adapter := NewSwitchAdapter(mock)

			err := adapter.Connect()
			if tt.connectErr != nil {
				assert.ErrorIs(t, err, tt.connectErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectConn, adapter.IsConnected())

			adapter.Disconnect()
			assert.False(t, adapter.IsConnected())
		})
	}
}

func TestSwitchAdapter_ExecuteCommand(t *testing.T) {
	t.Run("connects on demand", func(t *testing.T) {
		mock := &MockClient{cmdResponses: map[string]string{"show version": "Cisco IOS Software"}}
		adapter := NewSwitchAdapter(mock)

		out, err := adapter.ExecuteCommand("show version")
		require.NoError(t, err)
		assert.Equal(t, "Cisco IOS Software", out)
		assert.Equal(t, 1, mock.connects)

		_, err = adapter.ExecuteCommand("show version")
		require.NoError(t, err)
		assert.Equal(t, 1, mock.connects, "an open session must be reused")
	})

	t.Run("connect failure skips the command", func(t *testing.T) {
		mock := &MockClient{connectError: errors.New("refused")}
		_, err := NewSwitchAdapter(mock).ExecuteCommand("show vlan brief")
		assert.Error(t, err)
		assert.Empty(t, mock.executedCmds)
	})

	t.Run("command error", func(t *testing.T) {
		boom := errors.New("eof")
		mock := &MockClient{cmdErrors: map[string]error{"show vlan brief": boom}}
		_, err := NewSwitchAdapter(mock).ExecuteCommand("show vlan brief")
		assert.ErrorIs(t, err, boom)
	})
}
