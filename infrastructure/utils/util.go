package utils

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"comment-insights/infrastructure/logger"

	"github.com/golang-jwt/jwt"
)

func GetCurrentTime() time.Time {
	return time.Now().UTC()
}

func GenerateToken(payload map[string]interface{}, secretKey string) (string, error) {
	var claims jwt.MapClaims = payload
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while generate token")
		return "", err
	}
	return tokenString, nil
}

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ExtractVideoID pulls the 11-character video id out of the common YouTube
// URL shapes (watch, youtu.be, shorts, embed) or accepts a bare id.
func ExtractVideoID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if videoIDPattern.MatchString(raw) {
		return raw, true
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false
	}
	host := strings.TrimPrefix(u.Host, "www.")
	switch host {
	case "youtu.be":
		id := strings.Trim(u.Path, "/")
		if videoIDPattern.MatchString(id) {
			return id, true
		}
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		if id := u.Query().Get("v"); videoIDPattern.MatchString(id) {
			return id, true
		}
		for _, prefix := range []string{"/shorts/", "/embed/", "/live/"} {
			if strings.HasPrefix(u.Path, prefix) {
				id := strings.Trim(strings.TrimPrefix(u.Path, prefix), "/")
				if videoIDPattern.MatchString(id) {
					return id, true
				}
			}
		}
	}
	return "", false
}
