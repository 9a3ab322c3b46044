package protocol

import "encoding/json"

// PlayerInfo is one roster entry as pushed by the server. Roster order is
// server-authoritative; position 0 is the host.
type PlayerInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Alive bool   `json:"alive"`
}

// Inbound payload shapes. Time is seconds since epoch and optional; zero
// means the server omitted it and the client substitutes receipt time.

type SystemMessagePayload struct {
	Text string `json:"text"`
	Time int64  `json:"time"`
}

type ChatMessagePayload struct {
	From string `json:"from"`
	Text string `json:"text"`
	Time int64  `json:"time"`
}

type GameStartedPayload struct {
	NumPlayers int `json:"numPlayers"`
}

type RolePayload struct {
	Role string `json:"role"`
}

type WordPayload struct {
	Word string `json:"word"`
}

type ClueSubmittedPayload struct {
	Name string `json:"name"`
}

type CluesRevealedPayload struct {
	Clues map[string]string `json:"clues"`
}

type VotingStartedPayload struct {
	AliveCount int `json:"aliveCount"`
}

type VoteCastPayload struct {
	VoterName  string `json:"voterName"`
	TargetName string `json:"targetName"`
	Time       int64  `json:"time"`
}

type VotingUpdatePayload struct {
	Voters     []string `json:"voters"`
	VotesCount int      `json:"votesCount"`
	AliveCount int      `json:"aliveCount"`
}

type VoteResultsPayload struct {
	EliminatedName string         `json:"eliminatedName"`
	Tally          map[string]int `json:"tally"`
}

type GameOverPayload struct {
	Winner string `json:"winner"`
}

type GameErrorPayload struct {
	Msg string `json:"msg"`
}

// Outbound payload shapes. Field names are fixed by the server contract.

type JoinPayload struct {
	Name string `json:"name"`
}

type ChatSendPayload struct {
	From string `json:"from"`
	Text string `json:"text"`
}

type SubmitCluePayload struct {
	Clue string `json:"clue"`
}

type CastVotePayload struct {
	TargetID string `json:"targetId"`
}

// DecodePayload unmarshals raw into out. An absent or malformed payload
// leaves out at its zero value; missing fields keep their defaults. This is
// the single defaulting rule for every inbound field read.
func DecodePayload(raw json.RawMessage, out any) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, out)
}

// DecodePlayerList decodes a roster payload, returning an empty roster when
// the payload is not a JSON array.
func DecodePlayerList(raw json.RawMessage) []PlayerInfo {
	var list []PlayerInfo
	if len(raw) == 0 {
		return []PlayerInfo{}
	}
	if err := json.Unmarshal(raw, &list); err != nil || list == nil {
		return []PlayerInfo{}
	}
	return list
}
