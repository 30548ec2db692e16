package settings

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gigportal/internal/models"
)

const (
	KeyLLMBaseURL = "llm.base_url"
	KeyLLMAPIKey  = "llm.api_key"
	KeyLLMModel   = "llm.model"

	KeyVKAccessToken = "social.vk.access_token"
	KeyVKGroupID     = "social.vk.group_id"
	KeyTGBotToken    = "social.tg.bot_token"
	KeyTGChatID      = "social.tg.chat_id"
)

type LLMSettings struct {
	BaseURL string
	APIKey  string
	Model   string
}

type SocialSettings struct {
	VKAccessToken string
	VKGroupID     string
	TGBotToken    string
	TGChatID      string
}

func LoadLLM(db *gorm.DB) (LLMSettings, error) {
	out := LLMSettings{}
	values, err := loadKeys(db, KeyLLMBaseURL, KeyLLMAPIKey, KeyLLMModel)
	if err != nil {
		return out, err
	}
	out.BaseURL = values[KeyLLMBaseURL]
	out.APIKey = values[KeyLLMAPIKey]
	out.Model = values[KeyLLMModel]
	return out, nil
}

func SaveLLM(db *gorm.DB, cfg LLMSettings) error {
	return saveKeys(db, map[string]string{
		KeyLLMBaseURL: cfg.BaseURL,
		KeyLLMAPIKey:  cfg.APIKey,
		KeyLLMModel:   cfg.Model,
	})
}

func LoadSocial(db *gorm.DB) (SocialSettings, error) {
	out := SocialSettings{}
	values, err := loadKeys(db, KeyVKAccessToken, KeyVKGroupID, KeyTGBotToken, KeyTGChatID)
	if err != nil {
		return out, err
	}
	out.VKAccessToken = values[KeyVKAccessToken]
	out.VKGroupID = values[KeyVKGroupID]
	out.TGBotToken = values[KeyTGBotToken]
	out.TGChatID = values[KeyTGChatID]
	return out, nil
}

func SaveSocial(db *gorm.DB, cfg SocialSettings) error {
	return saveKeys(db, map[string]string{
		KeyVKAccessToken: cfg.VKAccessToken,
		KeyVKGroupID:     cfg.VKGroupID,
		KeyTGBotToken:    cfg.TGBotToken,
		KeyTGChatID:      cfg.TGChatID,
	})
}

func loadKeys(db *gorm.DB, keys ...string) (map[string]string, error) {
	var rows []models.AppSetting
	if err := db.Where("setting_key IN ?", keys).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

func saveKeys(db *gorm.DB, values map[string]string) error {
	for key, value := range values {
		row := models.AppSetting{Key: key, Value: value}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "setting_key"}},
			UpdateAll: true,
		}).Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
