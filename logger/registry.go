package logger

import (
	"sync"
)

// Named loggers override the global logger for one component.
var named = struct {
	sync.RWMutex
	loggers map[string]*Logger
}{loggers: make(map[string]*Logger)}

// Register installs l as the logger for component name, replacing any
// previous one.
func Register(name string, l *Logger) {
	named.Lock()
	named.loggers[name] = l
	named.Unlock()
}

// Unregister removes the logger for name.
func Unregister(name string) {
	named.Lock()
	delete(named.loggers, name)
	named.Unlock()
}

// Get returns the logger registered for name, or the global logger tagged
// with name as its component.
func Get(name string) *Logger {
	named.RLock()
	l, ok := named.loggers[name]
	named.RUnlock()
	if ok {
		return l
	}
	return GetGlobalLogger().WithComponent(name)
}
