package tracker

import (
	"fmt"

	"github.com/julianstephens/girassol/internal/constants"
	"github.com/julianstephens/girassol/internal/kvstore"
	"github.com/julianstephens/girassol/internal/models"
	"github.com/julianstephens/girassol/internal/schema"
	"github.com/julianstephens/girassol/internal/utils"
)

// DefaultPreferences is used until the user changes a setting
func DefaultPreferences() models.Preferences {
	return models.Preferences{
		Sounds:           true,
		Notifications:    false,
		NotificationTime: constants.DefaultNotificationTime,
	}
}

func (s *Service) Preferences() models.Preferences {
	p := kvstore.Load(s.store, schema.Preferences, DefaultPreferences())
	if !utils.ValidateTimeFormat(p.NotificationTime) {
		p.NotificationTime = constants.DefaultNotificationTime
	}
	return p
}

// SavePreferences validates and stores p
func (s *Service) SavePreferences(p models.Preferences) error {
	if !utils.ValidateTimeFormat(p.NotificationTime) {
		return fmt.Errorf("invalid notification time %q: expected HH:MM", p.NotificationTime)
	}
	kvstore.Save(s.store, schema.Preferences, p)
	return nil
}
