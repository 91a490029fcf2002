/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package interfaces

// Logger is implemented by ulogger and null. Every event carries a numeric
// event ID so that log lines can be searched independently of the message text.
// sfcli reserves 3000-3299 and sfsandbox 1000-2999.
type Logger interface {
	EventLogger
	FormatLogger
}

// EventLogger logs a fixed message with structured fields
type EventLogger interface {
	Debug(eid uint32, message string, fields Fields)
	Info(eid uint32, message string, fields Fields)
	Warning(eid uint32, message string, fields Fields)
	Error(eid uint32, message string, fields Fields)
	Fatal(eid uint32, message string, fields Fields)
}

// FormatLogger logs a printf-style message without fields
type FormatLogger interface {
	Debugf(eid uint32, format string, v ...any)
	Infof(eid uint32, format string, v ...any)
	Warningf(eid uint32, format string, v ...any)
	Errorf(eid uint32, format string, v ...any)
	Fatalf(eid uint32, format string, v ...any)
}

// Fields decouples the logger from the fields package
type Fields interface {
	ToText() string
	ToPairs() []NVPair
}

type NVPair interface {
	Name() string
	Value() any
}
