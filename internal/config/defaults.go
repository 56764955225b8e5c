package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"store": map[string]interface{}{
			"path": "~/.reminderd/reminders.db",
		},
		"scheduler": map[string]interface{}{
			"enabled":        false,
			"interval":       300, // seconds between sweeps
			"check_on_start": true,
		},
		"notify": map[string]interface{}{
			"method":      NotifyAuto,
			"retries":     3,
			"retry_delay": 1,
			"telegram": map[string]interface{}{
				"bot_token": "",
				"chat_id":   "",
			},
		},
		"snooze": map[string]interface{}{
			"presets": []int{15, 30, 45, 60},
		},
		"ui": map[string]interface{}{
			"colored_output": true,
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}

func GetDefaultConfigPath() string {
	return "~/.reminderd/config.yaml"
}
