package domain

type CandidateStatus string

const (
	CandidatePending CandidateStatus = "pending"
	CandidateSaved   CandidateStatus = "saved"
	CandidateError   CandidateStatus = "error"
)

// DestinatarioEstratto is the recipient block returned by field extraction.
// Every field is best-effort: absent in the source text means empty here.
type DestinatarioEstratto struct {
	RagioneSociale string `json:"ragioneSociale,omitempty"`
	Indirizzo      string `json:"indirizzo,omitempty"`
	CAP            string `json:"cap,omitempty"`
	Citta          string `json:"citta,omitempty"`
	Provincia      string `json:"provincia,omitempty"`
}

// DDTData carries the fields extracted from one document page, plus the ids
// filled in by entity resolution.
type DDTData struct {
	Committente  string                `json:"committente,omitempty"`
	Destinatario *DestinatarioEstratto `json:"destinatario,omitempty"`
	DataDDT      string                `json:"dataDDT,omitempty"`
	NumeroDDT    string                `json:"numeroDDT,omitempty"`
	Colli        *int                  `json:"colli,omitempty"`
	Peso         *float64              `json:"peso,omitempty"`
	Contrassegno *float64              `json:"contrassegno,omitempty"`

	CommittenteID  string `json:"committenteId,omitempty"`
	DestinatarioID string `json:"destinatarioId,omitempty"`
}

// Empty reports whether extraction recognized nothing usable on the page.
func (d DDTData) Empty() bool {
	return d.Committente == "" &&
		d.Destinatario == nil &&
		d.DataDDT == "" &&
		d.NumeroDDT == "" &&
		d.Colli == nil &&
		d.Peso == nil &&
		d.Contrassegno == nil
}

// CandidateMetadata records how entity resolution went for one page.
type CandidateMetadata struct {
	CommittenteMapped   bool   `json:"committenteMapped"`
	DestinatarioMapped  bool   `json:"destinatarioMapped"`
	DestinatarioCreated bool   `json:"destinatarioCreated"`
	DestinatarioError   string `json:"destinatarioError,omitempty"`
}

// ImportCandidate is one page's proposed shipment. It lives only in the
// caller's memory: the server never stores candidate state between requests.
type ImportCandidate struct {
	PageNumber int                `json:"pageNumber"`
	Data       *DDTData           `json:"data,omitempty"`
	Metadata   *CandidateMetadata `json:"metadata,omitempty"`
	Error      string             `json:"error,omitempty"`
	Status     CandidateStatus    `json:"status"`
}

type ImportSummary struct {
	TotalPages      int `json:"totalPages"`
	ProcessedPages  int `json:"processedPages"`
	PagesWithErrors int `json:"pagesWithErrors"`
}

type ImportResult struct {
	Candidates []ImportCandidate `json:"candidates"`
	Summary    ImportSummary     `json:"summary"`
}
