package config

import (
	"github.com/fsnotify/fsnotify"
)

// Watch starts watching the config file and reloads it on change.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil
	}

	m.viper.OnConfigChange(m.handleChange)
	m.viper.WatchConfig()
	m.watching = true
	return nil
}

func (m *Manager) handleChange(e fsnotify.Event) {
	m.mu.Lock()
	log := m.log
	log.Debug().Str("op", e.Op.String()).Str("file", e.Name).Msg("config change detected")

	if m.skipNextReload {
		m.skipNextReload = false
		if err := m.viper.ReadInConfig(); err != nil {
			log.Warn().Err(err).Msg("failed to sync viper config after save")
		}
		m.notifyCallbacksLocked()
		return
	}

	if err := m.reload(); err != nil {
		log.Warn().Err(err).Msg("failed to reload config, keeping previous values")
		m.mu.Unlock()
		return
	}
	m.notifyCallbacksLocked()
}

// notifyCallbacksLocked releases m.mu, then runs the callbacks with the
// current config. Must be called with m.mu held for write.
func (m *Manager) notifyCallbacksLocked() {
	config := *m.config
	callbacks := make([]func(*Config), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()

	for _, callback := range callbacks {
		c := config
		callback(&c)
	}
}

// OnConfigChange registers a callback run after every successful reload.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
}
