package entity

const botName = "Bot"

type Player struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Mark    Mark   `json:"mark,omitempty"`
	MatchID string `json:"match_id,omitempty"`
	Bot     bool   `json:"bot,omitempty"`
}

func NewBotPlayer(matchID string, mark Mark) *Player {
	return &Player{
		ID:      "bot:" + matchID,
		Name:    botName,
		Mark:    mark,
		MatchID: matchID,
		Bot:     true,
	}
}

func (that *Player) IsBot() bool {
	return that.Bot
}
