package presenter

import (
	"log"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// PresetsConfig matches the tool presets YAML file: named rotating-message
// sets and countdown defaults an operator can drop into a setlist without
// retyping them every service.
type PresetsConfig struct {
	Defaults struct {
		MessageIntervalSeconds int    `yaml:"message_interval_seconds"`
		CountdownMessage       string `yaml:"countdown_message"`
	} `yaml:"defaults"`
	MessageSets map[string]MessageSet      `yaml:"message_sets"`
	Countdowns  map[string]CountdownPreset `yaml:"countdowns"`
}

type MessageSet struct {
	IntervalSeconds int      `yaml:"interval_seconds"`
	Messages        []string `yaml:"messages"`
}

type CountdownPreset struct {
	Seconds int    `yaml:"seconds"`
	Message string `yaml:"message"`
}

var (
	currentPresets *PresetsConfig
	presetsMu      sync.RWMutex
)

// LoadPresets reads the presets YAML. Missing file is not fatal; preset
// lookups just return false.
func LoadPresets(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var cfg PresetsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}

	presetsMu.Lock()
	currentPresets = &cfg
	presetsMu.Unlock()

	log.Printf("📋 Presets loaded: %d message sets, %d countdowns", len(cfg.MessageSets), len(cfg.Countdowns))
	return nil
}

// MessagesToolFromPreset builds a rotating-messages tool item from a named
// preset set.
func MessagesToolFromPreset(name string) (Item, bool) {
	presetsMu.RLock()
	defer presetsMu.RUnlock()

	if currentPresets == nil {
		return Item{}, false
	}
	set, ok := currentPresets.MessageSets[name]
	if !ok {
		return Item{}, false
	}

	interval := set.IntervalSeconds
	if interval <= 0 {
		interval = currentPresets.Defaults.MessageIntervalSeconds
	}
	msgs := make([]Message, len(set.Messages))
	for i, text := range set.Messages {
		msgs[i] = Message{Text: text, Enabled: true}
	}
	return NewMessagesTool(name, msgs, interval), true
}

// CountdownToolFromPreset builds a countdown tool item from a named preset.
func CountdownToolFromPreset(name string) (Item, bool) {
	presetsMu.RLock()
	defer presetsMu.RUnlock()

	if currentPresets == nil {
		return Item{}, false
	}
	p, ok := currentPresets.Countdowns[name]
	if !ok {
		return Item{}, false
	}
	msg := p.Message
	if msg == "" {
		msg = currentPresets.Defaults.CountdownMessage
	}
	return NewCountdownTool(name, p.Seconds, msg), true
}
