package domain

type SpedizioneStato string

const (
	StatoInserita  SpedizioneStato = "INSERITA"
	StatoAssegnata SpedizioneStato = "ASSEGNATA"
	StatoInConsegna SpedizioneStato = "IN_CONSEGNA"
	StatoConsegnata SpedizioneStato = "CONSEGNATA"
	StatoProblema   SpedizioneStato = "PROBLEMA"
)

func (s SpedizioneStato) Valid() bool {
	switch s {
	case StatoInserita, StatoAssegnata, StatoInConsegna, StatoConsegnata, StatoProblema:
		return true
	}
	return false
}

type Turno string

const (
	TurnoMattino    Turno = "MATTINO"
	TurnoPomeriggio Turno = "POMERIGGIO"
)

// Spedizione is one shipment row. NumeroSpedizione is assigned by the store
// at insert time and is never supplied by callers.
type Spedizione struct {
	ID               string          `json:"id"`
	NumeroSpedizione int             `json:"numeroSpedizione"`
	CommittenteID    string          `json:"committenteId"`
	DestinatarioID   string          `json:"destinatarioId"`
	DataDDT          string          `json:"dataDDT"`
	NumeroDDT        string          `json:"numeroDDT"`
	Colli            int             `json:"colli"`
	PesoKg           float64         `json:"pesoKg"`
	Contrassegno     *float64        `json:"contrassegno,omitempty"`
	Stato            SpedizioneStato `json:"stato"`
	GiroID           *string         `json:"giroId"`
	Note             string          `json:"note,omitempty"`
}

// NuovaSpedizione is the creation payload accepted by the shipment service.
type NuovaSpedizione struct {
	CommittenteID  string          `json:"committenteId"`
	DestinatarioID string          `json:"destinatarioId"`
	DataDDT        string          `json:"dataDDT"`
	NumeroDDT      string          `json:"numeroDDT"`
	Colli          int             `json:"colli"`
	PesoKg         float64         `json:"pesoKg"`
	Contrassegno   *float64        `json:"contrassegno,omitempty"`
	Stato          SpedizioneStato `json:"stato,omitempty"`
	GiroID         *string         `json:"giroId"`
	Note           string          `json:"note,omitempty"`
}

// SpedizioneDettaglio joins the referenced anagrafiche for list views.
type SpedizioneDettaglio struct {
	Spedizione
	Committente  Committente  `json:"committente"`
	Destinatario Destinatario `json:"destinatario"`
}

type Giro struct {
	ID        string `json:"id"`
	Data      string `json:"data"`
	Turno     Turno  `json:"turno"`
	AutistaID string `json:"autistaId"`
	MezzoID   string `json:"mezzoId"`
	Zona      string `json:"zona,omitempty"`
	Note      string `json:"note,omitempty"`
}

type GiroDettaglio struct {
	Giro
	Autista Autista `json:"autista"`
	Mezzo   Mezzo   `json:"mezzo"`
}

// Stats feeds the dashboard counters.
type Stats struct {
	SpedizioniDaAssegnare int `json:"spedizioniDaAssegnare"`
	GiriOggi              int `json:"giriOggi"`
	InConsegna            int `json:"inConsegna"`
	ConsegnateOggi        int `json:"consegnateOggi"`
}
