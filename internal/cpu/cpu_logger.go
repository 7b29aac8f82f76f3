package cpu

import (
	"fmt"

	"nitro-core-dx/internal/debug"
)

// LogLevel is the CPU-specific verbosity knob, narrower than debug.LogLevel
// since there is no instruction stream to decode at this level of detail.
type LogLevel int

const (
	LogNone LogLevel = iota
	LogIRQs
	LogTrace
)

// LoggerAdapter adapts debug.Logger to the CPU component, logging IRQ
// service and (at LogTrace) every Execute call's register snapshot.
type LoggerAdapter struct {
	logger *debug.Logger
	level  LogLevel
}

// NewLoggerAdapter returns an adapter at the given verbosity; a nil logger
// disables all output regardless of level.
func NewLoggerAdapter(logger *debug.Logger, level LogLevel) *LoggerAdapter {
	return &LoggerAdapter{logger: logger, level: level}
}

func (a *LoggerAdapter) SetLevel(level LogLevel) { a.level = level }

func (a *LoggerAdapter) logIRQ(level int, state State) {
	if a == nil || a.logger == nil || a.level < LogIRQs {
		return
	}
	a.logger.LogSystem(debug.LogLevelInfo, fmt.Sprintf("IRQ level %d serviced, PC=0x%08X", level, state.PC), nil)
}

func (a *LoggerAdapter) logTrace(state State, spent int) {
	if a == nil || a.logger == nil || a.level < LogTrace {
		return
	}
	a.logger.LogSystem(debug.LogLevelTrace, fmt.Sprintf("PC=0x%08X SR=0x%04X cycles+=%d", state.PC, state.SR, spent), nil)
}
