package app

import (
	"time"

	"github.com/openraise/fundbridge-backend/internal/pkg/logger"
	"github.com/openraise/fundbridge-backend/internal/utils"
)

type Config struct {
	Port                 string
	JWTSecretKey         string
	AccessTokenTTL       time.Duration
	RefreshTokenTTL      time.Duration
	PaymentCallbackToken string
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	// Empty disables callback auth; local gateways don't send the header.
	paymentCallbackToken := utils.GetEnv("PAYMENT_CALLBACK_TOKEN", "", log)
	return Config{
		Port:                 port,
		JWTSecretKey:         jwtSecretKey,
		AccessTokenTTL:       time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL:      time.Duration(refreshTokenTTLSeconds) * time.Second,
		PaymentCallbackToken: paymentCallbackToken,
	}
}
