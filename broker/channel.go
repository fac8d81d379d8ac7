package broker

import "fmt"

// Channel pairs two named queues, labeled in and out from one
// party's view; the counterparty binds them swapped. This is the
// only rendezvous convention between a PlayerEndpoint and its
// transport bridge (spec §4.1).
type Channel struct {
	In  *MessageQueue
	Out *MessageQueue
}

// QueueNames returns the player-session queue pair name per the
// naming convention fixed by spec §6:
// "poker:player-{pid}:session-{sid}:I" / ":O".
func QueueNames(playerID, sessionID string) (in, out string) {
	base := fmt.Sprintf("poker:player-%s:session-%s", playerID, sessionID)
	return base + ":I", base + ":O"
}

// NewPlayerChannel builds the server-side Channel for a player
// session: In is the queue the client pushes to, Out is the queue
// the client pops from.
func NewPlayerChannel(b Broker, playerID, sessionID string) Channel {
	in, out := QueueNames(playerID, sessionID)
	return Channel{In: NewMessageQueue(b, in), Out: NewMessageQueue(b, out)}
}

// LobbyQueueName is the fixed external name connection messages
// land on (spec §6).
const LobbyQueueName = "texas-holdem-poker:lobby"
