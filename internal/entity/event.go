package entity

type EventType string

const (
	EventTurnChanged      EventType = "turn_changed"
	EventCardsDrawn       EventType = "cards_drawn"
	EventCardPlayed       EventType = "card_played"
	EventPlayerEliminated EventType = "player_eliminated"
	EventExplosionPending EventType = "explosion_pending"
	EventExplosionDefused EventType = "explosion_defused"
	EventFutureRevealed   EventType = "future_revealed"
	EventCardStolen       EventType = "card_stolen"
	EventPlayNoped        EventType = "play_noped"
	EventGameStarted      EventType = "game_started"
	EventGameEnded        EventType = "game_ended"
	EventStateSync        EventType = "state_sync"
)

// Event is an outbound game event. An empty Recipient addresses every player of the game.
type Event struct {
	Type      EventType `json:"type"`
	GameID    string    `json:"game_id"`
	Recipient string    `json:"recipient,omitempty"`
	Payload   any       `json:"payload"`
}

func NewEvent(gameID string, eventType EventType, payload any) Event {
	return Event{Type: eventType, GameID: gameID, Payload: payload}
}

func NewPrivateEvent(gameID, recipient string, eventType EventType, payload any) Event {
	return Event{Type: eventType, GameID: gameID, Recipient: recipient, Payload: payload}
}

func (that Event) IsPrivate() bool {
	return that.Recipient != ""
}

type TurnChangedPayload struct {
	Player  string `json:"player"`
	Pending int    `json:"pending"`
}

// CardsDrawnPayload carries Cards only on the private event to the drawing player.
type CardsDrawnPayload struct {
	Player string `json:"player"`
	Count  int    `json:"count"`
	Cards  []Card `json:"cards,omitempty"`
}

type CardPlayedPayload struct {
	Player string   `json:"player"`
	Cards  []Card   `json:"cards"`
	Kind   CardKind `json:"kind"`
	Target string   `json:"target,omitempty"`
}

type PlayerEliminatedPayload struct {
	Player   string `json:"player"`
	Departed bool   `json:"departed,omitempty"`
}

type ExplosionPendingPayload struct {
	Player string `json:"player"`
}

type ExplosionDefusedPayload struct {
	Player string `json:"player"`
}

type FutureRevealedPayload struct {
	Cards []Card `json:"cards"`
}

// CardStolenPayload is sent privately to both the thief and the victim.
type CardStolenPayload struct {
	From string `json:"from"`
	To   string `json:"to"`
	Card Card   `json:"card"`
}

type PlayNopedPayload struct {
	Player string   `json:"player"`
	Noped  string   `json:"noped"`
	Kind   CardKind `json:"kind"`
}

type GameStartedPayload struct {
	Players []string  `json:"players"`
	Hand    []Card    `json:"hand"`
	Stats   PileStats `json:"stats"`
}

type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	Player     string `json:"player"`
	Eliminated bool   `json:"eliminated,omitempty"`
	Departed   bool   `json:"departed,omitempty"`
}

type GameEndedPayload struct {
	Winner      string             `json:"winner,omitempty"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

type StateSyncPayload struct {
	Status           string    `json:"status"`
	Players          []string  `json:"players"`
	Ring             []string  `json:"ring"`
	CurrentTurn      string    `json:"current_turn,omitempty"`
	Pending          int       `json:"pending"`
	TopCard          *Card     `json:"top_card,omitempty"`
	Stats            PileStats `json:"stats"`
	Hand             []Card    `json:"hand"`
	PendingExplosion string    `json:"pending_explosion,omitempty"`
	Winner           string    `json:"winner,omitempty"`
}
