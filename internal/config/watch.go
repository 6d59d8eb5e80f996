package config

import (
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watch вызывает onChange после каждой записи файла настроек.
// Ошибки чтения передаются вместе с конфигом по умолчанию.
func Watch(path string, onChange func(cfg *Config, warnings []string, err error)) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, warnings, err := Load(path)
		onChange(cfg, warnings, err)
	})
	v.WatchConfig()
}
