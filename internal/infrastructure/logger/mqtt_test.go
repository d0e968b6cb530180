package logger

import (
	"testing"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMQTTLogger(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	l := NewMQTTLogger(zap.New(core), zapcore.WarnLevel)

	l.Println("[client]", "connection lost")
	l.Printf("[net] retrying in %ds", 10)

	entries := recorded.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "[client] connection lost", entries[0].Message)
	assert.Equal(t, "[net] retrying in 10s", entries[1].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestMQTTLogger_RespectsCoreLevel(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	l := NewMQTTLogger(zap.New(core), zapcore.DebugLevel)

	l.Println("ping")

	assert.Equal(t, 0, recorded.Len())
}

func TestInstallMQTTLogger(t *testing.T) {
	t.Cleanup(func() {
		mqtt.ERROR, mqtt.CRITICAL, mqtt.WARN, mqtt.DEBUG = mqtt.NOOPLogger{}, mqtt.NOOPLogger{}, mqtt.NOOPLogger{}, mqtt.NOOPLogger{}
	})
	core, recorded := observer.New(zapcore.DebugLevel)

	InstallMQTTLogger(zap.New(core), false)
	mqtt.ERROR.Println("boom")
	mqtt.DEBUG.Println("noise")

	require.Equal(t, 1, recorded.Len())
	assert.Equal(t, "mqtt", recorded.All()[0].LoggerName)
	assert.IsType(t, mqtt.NOOPLogger{}, mqtt.DEBUG)

	InstallMQTTLogger(zap.New(core), true)
	mqtt.DEBUG.Println("noise")
	assert.Equal(t, 2, recorded.Len())
}
