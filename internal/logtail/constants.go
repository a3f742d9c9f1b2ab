package logtail

import "time"

// Detection keys for the messages the bot reacts to.
const (
	KeyStationFull   = "station_full"
	KeyStationEmpty  = "station_empty"
	KeySeedPlanted   = "seed_planted"
	KeyHarvestDone   = "harvest_done"
	KeyConnection    = "connection"
	KeyDisconnection = "disconnection"
)

// Literal substrings emitted by the game client, matched verbatim.
const (
	MsgStationFull   = "Votre Station de Croissance est déjà pleine d'eau !"
	MsgStationEmpty  = "Votre Station de Croissance est vide"
	MsgSeedPlanted   = "Vous avez planté une graine"
	MsgHarvestDone   = "Vous avez récolté"
	MsgConnection    = "joined the game"
	MsgDisconnection = "left the game"
)

// PollInterval is how often WaitFor re-scans the log.
const PollInterval = 100 * time.Millisecond
