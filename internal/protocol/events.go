package protocol

// Inbound event names (server -> client).
const (
	EventConnect          = "connect"
	EventDisconnect       = "disconnect"
	EventPlayerList       = "player_list"
	EventSystemMessage    = "system_message"
	EventChatMessage      = "chat_message"
	EventGameStarted      = "game_started"
	EventYourRole         = "your_role"
	EventYourWord         = "your_word"
	EventClueSubmitted    = "clue_submitted"
	EventAllCluesRevealed = "all_clues_revealed"
	EventVotingStarted    = "voting_started"
	EventVoteCast         = "vote_cast"
	EventVotingUpdate     = "voting_update"
	EventVoteResults      = "vote_results"
	EventGameOver         = "game_over"
	EventGameError        = "game_error"

	// Legacy aliases for your_role/your_word, still emitted by the server
	// alongside the current names.
	EventRole = "role"
	EventWord = "word"
)

// Outbound event names (client -> server).
const (
	ActionJoin        = "join"
	ActionChatMessage = "chat_message"
	ActionStartGame   = "start_game"
	ActionSubmitClue  = "submit_clue"
	ActionStartVoting = "start_voting"
	ActionCastVote    = "cast_vote"
)
