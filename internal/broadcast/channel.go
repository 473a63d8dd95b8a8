// Package broadcast delivers game events to connected players over redis pub/sub.
package broadcast

import (
	"strings"

	"github.com/rocketscienceinc/kittens-backend/internal/entity"
)

const (
	channelPrefix = "game:"
	userInfix     = ":user:"

	// Pattern matches every game and player channel.
	Pattern = channelPrefix + "*"
)

func GameChannel(gameID string) string {
	return channelPrefix + gameID
}

func UserChannel(gameID, username string) string {
	return GameChannel(gameID) + userInfix + username
}

// ChannelFor returns the channel an event is published on.
func ChannelFor(event entity.Event) string {
	if event.IsPrivate() {
		return UserChannel(event.GameID, event.Recipient)
	}
	return GameChannel(event.GameID)
}

// ParseChannel splits a channel into game id and recipient, the latter empty for game channels.
func ParseChannel(channel string) (string, string, bool) {
	rest, ok := strings.CutPrefix(channel, channelPrefix)
	if !ok || rest == "" {
		return "", "", false
	}

	gameID, user, private := strings.Cut(rest, userInfix)
	if private && user == "" {
		return "", "", false
	}

	return gameID, user, true
}
