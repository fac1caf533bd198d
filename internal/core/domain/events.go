package domain

type SpedizioneEventKind string

const (
	EventSpedizioneCreata    SpedizioneEventKind = "spedizione.creata"
	EventSpedizioneAssegnata SpedizioneEventKind = "spedizione.assegnata"
	EventSpedizioneStato     SpedizioneEventKind = "spedizione.stato"
)

// SpedizioneEvent is the payload published on the event feed after a
// shipment is created, (un)assigned, or moved to a new stato.
type SpedizioneEvent struct {
	Kind             SpedizioneEventKind `json:"kind"`
	SpedizioneID     string              `json:"spedizioneId"`
	NumeroSpedizione int                 `json:"numeroSpedizione"`
	Stato            SpedizioneStato     `json:"stato"`
	GiroID           *string             `json:"giroId,omitempty"`
}
