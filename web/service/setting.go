package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/kokorindanilll2288-sys/rdss.github.io/caching"
	"github.com/kokorindanilll2288-sys/rdss.github.io/database"
	"github.com/kokorindanilll2288-sys/rdss.github.io/database/model"
	"github.com/kokorindanilll2288-sys/rdss.github.io/util/common"
	"github.com/kokorindanilll2288-sys/rdss.github.io/util/random"
)

var defaultValueMap = map[string]string{
	"webListen":     "",
	"webPort":       "5080",
	"webBasePath":   "/",
	"secret":        random.Seq(32),
	"sessionMaxAge": "43200",
	"timeLocation":  "Europe/Moscow",
	"timeFormat":    "02.01.2006, 15:04:05",
	"denylist":      "спам,реклама,оскорбление,мат,хулиган",
	"welcomeText":   "Добро пожаловать в Tatar SMS! Начните общение.",
}

// SettingService reads and writes panel settings stored in the settings
// table, falling back to defaultValueMap. String reads go through the
// in-memory cache so the feed endpoints do not re-query settings per
// request.
type SettingService struct{}

func (s *SettingService) getSetting(key string) (*model.Setting, error) {
	db := database.GetDB()
	setting := &model.Setting{}
	err := db.Model(model.Setting{}).Where("key = ?", key).First(setting).Error
	if err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *SettingService) saveSetting(key string, value string) error {
	setting, err := s.getSetting(key)
	db := database.GetDB()
	caching.Delete(key)
	if database.IsNotFound(err) {
		return db.Create(&model.Setting{
			Key:   key,
			Value: value,
		}).Error
	} else if err != nil {
		return err
	}
	setting.Key = key
	setting.Value = value
	return db.Save(setting).Error
}

func (s *SettingService) getString(key string) (string, error) {
	if value, ok := caching.Get(key); ok {
		return value, nil
	}
	setting, err := s.getSetting(key)
	if database.IsNotFound(err) {
		value, ok := defaultValueMap[key]
		if !ok {
			return "", common.NewErrorf("key <%v> not in defaultValueMap", key)
		}
		return value, nil
	} else if err != nil {
		return "", err
	}
	caching.Set(key, setting.Value)
	return setting.Value, nil
}

func (s *SettingService) setString(key string, value string) error {
	return s.saveSetting(key, value)
}

func (s *SettingService) getInt(key string) (int, error) {
	str, err := s.getString(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(str)
}

func (s *SettingService) setInt(key string, value int) error {
	return s.setString(key, strconv.Itoa(value))
}

func (s *SettingService) GetListen() (string, error) {
	return s.getString("webListen")
}

func (s *SettingService) GetPort() (int, error) {
	return s.getInt("webPort")
}

func (s *SettingService) SetPort(port int) error {
	return s.setInt("webPort", port)
}

func (s *SettingService) GetBasePath() (string, error) {
	basePath, err := s.getString("webBasePath")
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	return basePath, nil
}

func (s *SettingService) GetSecret() ([]byte, error) {
	secret, err := s.getString("secret")
	if err != nil {
		return nil, err
	}
	if secret == defaultValueMap["secret"] {
		err := s.saveSetting("secret", secret)
		if err != nil {
			return nil, err
		}
	}
	return []byte(secret), nil
}

func (s *SettingService) GetSessionMaxAge() (int, error) {
	return s.getInt("sessionMaxAge")
}

func (s *SettingService) GetTimeLocation() (*time.Location, error) {
	l, err := s.getString("timeLocation")
	if err != nil {
		return nil, err
	}
	location, err := time.LoadLocation(l)
	if err != nil {
		defaultLocation := defaultValueMap["timeLocation"]
		location, err = time.LoadLocation(defaultLocation)
		if err != nil {
			return nil, err
		}
	}
	return location, nil
}

func (s *SettingService) GetTimeFormat() (string, error) {
	return s.getString("timeFormat")
}

// GetDenylist returns the moderation terms, trimmed, with empty entries
// dropped.
func (s *SettingService) GetDenylist() ([]string, error) {
	raw, err := s.getString("denylist")
	if err != nil {
		return nil, err
	}
	parts := strings.Split(raw, ",")
	terms := make([]string, 0, len(parts))
	for _, part := range parts {
		term := strings.TrimSpace(part)
		if term != "" {
			terms = append(terms, term)
		}
	}
	return terms, nil
}

func (s *SettingService) SetDenylist(terms []string) error {
	cleaned := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term != "" {
			cleaned = append(cleaned, term)
		}
	}
	return s.setString("denylist", strings.Join(cleaned, ","))
}

func (s *SettingService) GetWelcomeText() (string, error) {
	return s.getString("welcomeText")
}

func (s *SettingService) ResetSettings() error {
	caching.Flush()
	db := database.GetDB()
	return db.Where("1 = 1").Delete(model.Setting{}).Error
}
