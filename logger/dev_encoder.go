package logger

import (
	"encoding/json"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// devEncoder is a custom encoder for development mode that outputs colored,
// human-readable logs with indented JSON for complex objects.
type devEncoder struct {
	zapcore.Encoder
	consoleEncoder zapcore.Encoder
	jsonEncoder    zapcore.Encoder
	pool           buffer.Pool
}

func newDevEncoder(encoderConfig zapcore.EncoderConfig) zapcore.Encoder {
	consoleEnc := zapcore.NewConsoleEncoder(encoderConfig)
	return &devEncoder{
		Encoder:        consoleEnc,
		consoleEncoder: consoleEnc,
		jsonEncoder:    zapcore.NewJSONEncoder(encoderConfig),
		pool:           buffer.NewPool(),
	}
}

// EncodeEntry renders the entry prefix through the console encoder, colorizes
// the level, and appends structured fields as indented JSON on a new line.
func (e *devEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	consoleBuf, err := e.consoleEncoder.EncodeEntry(entry, nil)
	if err != nil {
		return nil, err
	}

	line := strings.TrimRight(consoleBuf.String(), "\n")
	line = colorizeLevel(line, entry.Level)

	if len(fields) > 0 {
		fieldBuf, encErr := e.jsonEncoder.EncodeEntry(entry, fields)
		if encErr != nil {
			return nil, encErr
		}

		var fieldsMap map[string]any
		if unmarshalErr := json.Unmarshal(fieldBuf.Bytes(), &fieldsMap); unmarshalErr != nil {
			line += " " + fieldBuf.String()
		} else {
			line = appendFields(line, fieldsMap, fieldBuf)
		}
	}

	buf := e.pool.Get()
	buf.AppendString(line)
	buf.AppendString("\n")

	return buf, nil
}

func appendFields(line string, fieldsMap map[string]any, fieldBuf *buffer.Buffer) string {
	// These are already part of the console prefix.
	for _, k := range []string{messageKey, levelKey, nameKey, callerKey, timeKey} {
		delete(fieldsMap, k)
	}

	if len(fieldsMap) == 0 {
		return line
	}

	prettyJSON, err := json.MarshalIndent(fieldsMap, "", "  ")
	if err != nil {
		return line + " " + fieldBuf.String()
	}
	return line + "\n" + string(prettyJSON)
}

func colorizeLevel(line string, level zapcore.Level) string {
	var colorFunc func(a ...any) string

	switch level {
	case zapcore.DebugLevel:
		colorFunc = color.New(color.FgCyan).SprintFunc()
	case zapcore.InfoLevel:
		colorFunc = color.New(color.FgGreen).SprintFunc()
	case zapcore.WarnLevel:
		colorFunc = color.New(color.FgYellow).SprintFunc()
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		colorFunc = color.New(color.FgRed, color.Bold).SprintFunc()
	case zapcore.InvalidLevel:
		colorFunc = color.New(color.FgMagenta).SprintFunc()
	default:
		return line
	}

	capLevel := level.CapitalString()
	if strings.Contains(line, capLevel) {
		return strings.Replace(line, capLevel, colorFunc(capLevel), 1)
	}
	if strings.Contains(line, level.String()) {
		return strings.Replace(line, level.String(), colorFunc(level.String()), 1)
	}
	return line
}
