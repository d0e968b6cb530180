package logger

import (
	"fmt"
	"strings"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// MQTTLogger routes the MQTT library's package-level log hooks to zap at a fixed level
type MQTTLogger struct {
	logger *zap.Logger
	level  zapcore.Level
}

var _ mqtt.Logger = (*MQTTLogger)(nil)

// NewMQTTLogger creates an adapter writing at level to logger
func NewMQTTLogger(logger *zap.Logger, level zapcore.Level) *MQTTLogger {
	return &MQTTLogger{logger: logger, level: level}
}

// Println implements mqtt.Logger
func (l *MQTTLogger) Println(v ...any) {
	l.write(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

// Printf implements mqtt.Logger
func (l *MQTTLogger) Printf(format string, v ...any) {
	l.write(fmt.Sprintf(format, v...))
}

func (l *MQTTLogger) write(msg string) {
	if ce := l.logger.Check(l.level, msg); ce != nil {
		ce.Write()
	}
}

var mqttHooksMu sync.Mutex

// InstallMQTTLogger points the MQTT library's ERROR, CRITICAL and WARN hooks at logger.
// The very chatty DEBUG hook is only installed when debug is true.
func InstallMQTTLogger(logger *zap.Logger, debug bool) {
	mqttHooksMu.Lock()
	defer mqttHooksMu.Unlock()

	named := logger.Named("mqtt")
	mqtt.CRITICAL = NewMQTTLogger(named, zapcore.ErrorLevel)
	mqtt.ERROR = NewMQTTLogger(named, zapcore.ErrorLevel)
	mqtt.WARN = NewMQTTLogger(named, zapcore.WarnLevel)
	if debug {
		mqtt.DEBUG = NewMQTTLogger(named, zapcore.DebugLevel)
	} else {
		mqtt.DEBUG = mqtt.NOOPLogger{}
	}
}
