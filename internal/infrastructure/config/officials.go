package config

import (
	"errors"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/civicspath/backend/internal/domain/officials"
)

// LoadOfficials reads federal officeholders from a YAML file. Keys missing
// from the file keep their built-in values; an empty path returns the
// built-in set.
func LoadOfficials(path string) (officials.Federal, error) {
	if path == "" {
		return officials.DefaultFederal(), nil
	}
	v := newOfficialsViper(path)
	if err := v.ReadInConfig(); err != nil {
		return officials.Federal{}, fmt.Errorf("read officials file: %w", err)
	}
	return decodeOfficials(v)
}

// WatchOfficials loads path and calls apply with every later valid revision
// of the file. Invalid revisions are logged and skipped.
func WatchOfficials(path string, logger *zap.Logger, apply func(officials.Federal)) (officials.Federal, error) {
	v := newOfficialsViper(path)
	if err := v.ReadInConfig(); err != nil {
		return officials.Federal{}, fmt.Errorf("read officials file: %w", err)
	}
	fed, err := decodeOfficials(v)
	if err != nil {
		return officials.Federal{}, err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		fed, err := decodeOfficials(v)
		if err != nil {
			logger.Error("officials reload rejected", zap.String("file", e.Name), zap.Error(err))
			return
		}
		logger.Info("officials reloaded",
			zap.String("file", e.Name),
			zap.String("last_updated", fed.LastUpdated),
		)
		apply(fed)
	})
	v.WatchConfig()
	return fed, nil
}

func newOfficialsViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	d := officials.DefaultFederal()
	for key, holder := range map[string]officials.Officeholder{
		"president":      d.President,
		"vice_president": d.VicePresident,
		"speaker":        d.Speaker,
		"chief_justice":  d.ChiefJustice,
	} {
		v.SetDefault(key+".name", holder.Name)
		v.SetDefault(key+".aliases", holder.Aliases)
	}
	v.SetDefault("distractor_pool", d.DistractorPool)
	v.SetDefault("last_updated", d.LastUpdated)
	return v
}

var errMissingHolder = errors.New("officeholder name is required")

func decodeOfficials(v *viper.Viper) (officials.Federal, error) {
	var fed officials.Federal
	if err := v.Unmarshal(&fed); err != nil {
		return officials.Federal{}, fmt.Errorf("decode officials: %w", err)
	}
	for _, office := range []officials.Office{officials.President, officials.VicePresident, officials.Speaker, officials.ChiefJustice} {
		holder, _ := fed.Holder(office)
		if holder.Name == "" {
			return officials.Federal{}, fmt.Errorf("%s: %w", office, errMissingHolder)
		}
	}
	return fed, nil
}
