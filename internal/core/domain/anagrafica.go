package domain

// Committente is the party that commissions a shipment. Matched by name
// during DDT import, never auto-created.
type Committente struct {
	ID             string `json:"id"`
	RagioneSociale string `json:"ragioneSociale"`
	Categoria      string `json:"categoria,omitempty"`
	Note           string `json:"note,omitempty"`
}

// Destinatario is the delivery destination's business entity. Matched by
// (ragione sociale, citta) during import and auto-created on a miss.
type Destinatario struct {
	ID             string `json:"id"`
	RagioneSociale string `json:"ragioneSociale"`
	Indirizzo      string `json:"indirizzo"`
	CAP            string `json:"cap"`
	Citta          string `json:"citta"`
	Provincia      string `json:"provincia"`
	Zona           string `json:"zona,omitempty"`
	Note           string `json:"note,omitempty"`
}

type Autista struct {
	ID             string `json:"id"`
	Nome           string `json:"nome"`
	Cognome        string `json:"cognome"`
	Telefono       string `json:"telefono"`
	ZonaPrincipale string `json:"zonaPrincipale"`
	Attivo         bool   `json:"attivo"`
}

type Mezzo struct {
	ID        string `json:"id"`
	Targa     string `json:"targa"`
	Modello   string `json:"modello"`
	PortataKg int    `json:"portataKg"`
	Note      string `json:"note,omitempty"`
}

type Utente struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}
