package application

import (
	"github.com/stretchr/testify/mock"
)

type MockRadio struct {
	mock.Mock
}

func (m *MockRadio) Configure(ssid, passphrase string) error {
	return m.Called(ssid, passphrase).Error(0)
}

func (m *MockRadio) Connect() error {
	return m.Called().Error(0)
}

func (m *MockRadio) Disconnect() error {
	return m.Called().Error(0)
}

var _ Radio = &MockRadio{}

type MockSessionClient struct {
	mock.Mock
}

func (m *MockSessionClient) Start(host string, port int, clientID, username, password string) {
	m.Called(host, port, clientID, username, password)
}

func (m *MockSessionClient) Stop() {
	m.Called()
}

func (m *MockSessionClient) Subscribe(topic string, qos byte) error {
	return m.Called(topic, qos).Error(0)
}

func (m *MockSessionClient) Publish(topic string, payload []byte, qos byte, retained bool) error {
	return m.Called(topic, payload, qos, retained).Error(0)
}

var _ SessionClient = &MockSessionClient{}

type MockIndicator struct {
	mock.Mock
}

func (m *MockIndicator) SetLevel(on bool) {
	m.Called(on)
}

var _ Indicator = &MockIndicator{}

type MockMessageSink struct {
	mock.Mock
}

func (m *MockMessageSink) Report(topic string, payload []byte, n int) {
	m.Called(topic, payload, n)
}

var _ MessageSink = &MockMessageSink{}
